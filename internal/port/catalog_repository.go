package port

import (
	"context"

	"github.com/google/uuid"

	"latrack/internal/domain"
)

// CatalogRepository defines the contract for criteria catalog persistence.
// The catalog is replaced wholesale per period: Replace drops and rewrites
// every criterion in one transaction, mirroring the batched whole-document
// overwrite pattern of the admin editor.
type CatalogRepository interface {
	Replace(ctx context.Context, periodID uuid.UUID, criteria []domain.Criterion) error
	ListByPeriod(ctx context.Context, periodID uuid.UUID) ([]domain.Criterion, error)
}

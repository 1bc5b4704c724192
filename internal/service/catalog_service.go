package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"latrack/internal/catalog"
	"latrack/internal/domain"
	"latrack/internal/port"
)

// CatalogService manages the criteria definition tree for assessment
// periods. Admins replace the tree wholesale; every read path returns a
// schema-current catalog regardless of what version is stored.
type CatalogService interface {
	Replace(ctx context.Context, periodID uuid.UUID, criteria []domain.Criterion) error
	Get(ctx context.Context, periodID uuid.UUID) (*catalog.Catalog, error)
}

type catalogService struct {
	catalogRepo port.CatalogRepository
}

// NewCatalogService creates a new CatalogService implementation.
func NewCatalogService(catalogRepo port.CatalogRepository) CatalogService {
	return &catalogService{catalogRepo: catalogRepo}
}

func (s *catalogService) Replace(ctx context.Context, periodID uuid.UUID, criteria []domain.Criterion) error {
	for i := range criteria {
		if criteria[i].ID == "" {
			return fmt.Errorf("criterion at position %d has no id", i)
		}
		if applied := catalog.Migrate(&criteria[i]); applied > 0 {
			log.Printf("catalogService.Replace: criterion %s upgraded %d schema version(s)", criteria[i].ID, applied)
		}
	}
	if err := s.catalogRepo.Replace(ctx, periodID, criteria); err != nil {
		return err
	}
	log.Printf("catalogService.Replace: period %s catalog replaced with %d criteria", periodID, len(criteria))
	return nil
}

func (s *catalogService) Get(ctx context.Context, periodID uuid.UUID) (*catalog.Catalog, error) {
	criteria, err := s.catalogRepo.ListByPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}
	return catalog.New(criteria), nil
}

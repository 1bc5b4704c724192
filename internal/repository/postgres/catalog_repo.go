package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"latrack/internal/domain"
	"latrack/internal/port"
)

type catalogRepo struct {
	db *sqlx.DB
}

// NewCatalogRepo creates a new PostgreSQL-backed CatalogRepository.
// Each criterion is stored as one JSONB document row; the admin editor
// replaces the whole period's tree in a single transaction.
func NewCatalogRepo(db *sqlx.DB) port.CatalogRepository {
	return &catalogRepo{db: db}
}

type criterionRow struct {
	CriterionID string    `db:"criterion_id"`
	PeriodID    uuid.UUID `db:"period_id"`
	Ord         int       `db:"ord"`
	Data        []byte    `db:"data"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r *catalogRepo) Replace(ctx context.Context, periodID uuid.UUID, criteria []domain.Criterion) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("catalogRepo.Replace begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM criteria WHERE period_id = $1", periodID); err != nil {
		return fmt.Errorf("catalogRepo.Replace delete: %w", err)
	}

	now := time.Now().UTC()
	query := `INSERT INTO criteria (criterion_id, period_id, ord, data, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	for i := range criteria {
		data, err := json.Marshal(&criteria[i])
		if err != nil {
			return fmt.Errorf("catalogRepo.Replace marshal %s: %w", criteria[i].ID, err)
		}
		if _, err := tx.ExecContext(ctx, query,
			criteria[i].ID, periodID, criteria[i].Order, data, now); err != nil {
			return fmt.Errorf("catalogRepo.Replace insert %s: %w", criteria[i].ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("catalogRepo.Replace commit: %w", err)
	}
	return nil
}

func (r *catalogRepo) ListByPeriod(ctx context.Context, periodID uuid.UUID) ([]domain.Criterion, error) {
	var rows []criterionRow
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM criteria WHERE period_id = $1 ORDER BY ord", periodID)
	if err != nil {
		return nil, fmt.Errorf("catalogRepo.ListByPeriod: %w", err)
	}

	criteria := make([]domain.Criterion, 0, len(rows))
	for _, row := range rows {
		var crit domain.Criterion
		if err := json.Unmarshal(row.Data, &crit); err != nil {
			return nil, fmt.Errorf("catalogRepo.ListByPeriod unmarshal %s: %w", row.CriterionID, err)
		}
		criteria = append(criteria, crit)
	}
	return criteria, nil
}

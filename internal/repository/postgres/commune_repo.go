package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"latrack/internal/domain"
	"latrack/internal/port"
)

type communeRepo struct {
	db *sqlx.DB
}

// NewCommuneRepo creates a new PostgreSQL-backed CommuneRepository.
func NewCommuneRepo(db *sqlx.DB) port.CommuneRepository {
	return &communeRepo{db: db}
}

func (r *communeRepo) Create(ctx context.Context, commune *domain.Commune) error {
	now := time.Now().UTC()
	commune.CreatedAt = now
	commune.UpdatedAt = now

	query := `INSERT INTO communes
		(id, name, code, district, contact_email, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		commune.ID, commune.Name, commune.Code, commune.District,
		commune.ContactEmail, commune.IsActive, commune.CreatedAt, commune.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "communes_code_key") {
			return domain.ErrDuplicateCommune
		}
		return fmt.Errorf("communeRepo.Create: %w", err)
	}
	return nil
}

func (r *communeRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Commune, error) {
	var commune domain.Commune
	err := r.db.GetContext(ctx, &commune, "SELECT * FROM communes WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("communeRepo.GetByID: %w", err)
	}
	return &commune, nil
}

func (r *communeRepo) GetByCode(ctx context.Context, code string) (*domain.Commune, error) {
	var commune domain.Commune
	err := r.db.GetContext(ctx, &commune, "SELECT * FROM communes WHERE code = $1", code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("communeRepo.GetByCode: %w", err)
	}
	return &commune, nil
}

func (r *communeRepo) List(ctx context.Context, offset, limit int) ([]domain.Commune, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM communes"); err != nil {
		return nil, 0, fmt.Errorf("communeRepo.List count: %w", err)
	}

	var communes []domain.Commune
	err := r.db.SelectContext(ctx, &communes,
		"SELECT * FROM communes ORDER BY district, name OFFSET $1 LIMIT $2", offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("communeRepo.List: %w", err)
	}
	return communes, total, nil
}

func (r *communeRepo) Update(ctx context.Context, commune *domain.Commune) error {
	commune.UpdatedAt = time.Now().UTC()

	query := `UPDATE communes SET
		name = $2, code = $3, district = $4, contact_email = $5, is_active = $6, updated_at = $7
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		commune.ID, commune.Name, commune.Code, commune.District,
		commune.ContactEmail, commune.IsActive, commune.UpdatedAt)
	if err != nil {
		return fmt.Errorf("communeRepo.Update: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *communeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM communes WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("communeRepo.Delete: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"fynix/internal/domain"
	"fynix/internal/port"
)

type presetRepo struct {
	db *sqlx.DB
}

// NewPresetRepo creates a new PostgreSQL-backed PresetRepository.
func NewPresetRepo(db *sqlx.DB) port.PresetRepository {
	return &presetRepo{db: db}
}

func (r *presetRepo) List(ctx context.Context, tenantID uuid.UUID) ([]domain.PaymentPreset, error) {
	var presets []domain.PaymentPreset
	err := r.db.SelectContext(ctx, &presets,
		"SELECT * FROM payment_presets WHERE tenant_id = $1 ORDER BY created_at, name", tenantID)
	if err != nil {
		return nil, fmt.Errorf("presetRepo.List: %w", err)
	}
	return presets, nil
}

func (r *presetRepo) Create(ctx context.Context, p *domain.PaymentPreset) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO payment_presets (id, tenant_id, name, content, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.TenantID, p.Name, p.Content, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("presetRepo.Create: %w", err)
	}
	return nil
}

func (r *presetRepo) GetByID(ctx context.Context, tenantID, presetID uuid.UUID) (*domain.PaymentPreset, error) {
	var p domain.PaymentPreset
	err := r.db.GetContext(ctx, &p,
		"SELECT * FROM payment_presets WHERE id = $1 AND tenant_id = $2", presetID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPresetNotFound
		}
		return nil, fmt.Errorf("presetRepo.GetByID: %w", err)
	}
	return &p, nil
}

func (r *presetRepo) Delete(ctx context.Context, tenantID, presetID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM payment_presets WHERE id = $1 AND tenant_id = $2", presetID, tenantID)
	if err != nil {
		return fmt.Errorf("presetRepo.Delete: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"fynix/internal/domain"
	"fynix/internal/port"
)

type profileRepo struct {
	db *sqlx.DB
}

// NewProfileRepo creates a new PostgreSQL-backed ProfileRepository.
func NewProfileRepo(db *sqlx.DB) port.ProfileRepository {
	return &profileRepo{db: db}
}

type partyRow struct {
	Name    string `db:"name"`
	Address string `db:"address"`
	Email   string `db:"email"`
	Phone   string `db:"phone"`
	TaxID   string `db:"tax_id"`
}

func (p partyRow) toDomain() *domain.Party {
	return &domain.Party{Name: p.Name, Address: p.Address, Email: p.Email, Phone: p.Phone, TaxID: p.TaxID}
}

func (r *profileRepo) GetCompanyProfile(ctx context.Context, tenantID uuid.UUID) (*domain.Party, error) {
	var row partyRow
	err := r.db.GetContext(ctx, &row,
		"SELECT name, address, email, phone, tax_id FROM company_profiles WHERE tenant_id = $1", tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("profileRepo.GetCompanyProfile: %w", err)
	}
	return row.toDomain(), nil
}

func (r *profileRepo) GetPartnerProfile(ctx context.Context, tenantID uuid.UUID, clientID string) (*domain.Party, error) {
	var row partyRow
	err := r.db.GetContext(ctx, &row,
		`SELECT name, address, email, phone, tax_id FROM partner_profiles
		 WHERE tenant_id = $1 AND client_id = $2`, tenantID, clientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("profileRepo.GetPartnerProfile: %w", err)
	}
	return row.toDomain(), nil
}

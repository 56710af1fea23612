package memory

import (
	"context"

	"github.com/google/uuid"

	"fynix/internal/domain"
	"fynix/internal/port"
)

type profileRepo struct{ s *Store }

// NewProfileRepo returns a ProfileRepository over s.
func NewProfileRepo(s *Store) port.ProfileRepository { return &profileRepo{s: s} }

func (r *profileRepo) GetCompanyProfile(_ context.Context, tenantID uuid.UUID) (*domain.Party, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.companies[tenantID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return &p, nil
}

func (r *profileRepo) GetPartnerProfile(_ context.Context, tenantID uuid.UUID, clientID string) (*domain.Party, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.partners[partnerKey{tenantID, clientID}]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return &p, nil
}

package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"fynix/internal/domain"
	"fynix/internal/port"
)

type presetRepo struct{ s *Store }

// NewPresetRepo returns a PresetRepository over s.
func NewPresetRepo(s *Store) port.PresetRepository { return &presetRepo{s: s} }

func (r *presetRepo) List(_ context.Context, tenantID uuid.UUID) ([]domain.PaymentPreset, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []domain.PaymentPreset
	for _, p := range r.s.presets {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *presetRepo) Create(_ context.Context, p *domain.PaymentPreset) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	r.s.presets[p.ID] = *p
	return nil
}

func (r *presetRepo) GetByID(_ context.Context, tenantID, presetID uuid.UUID) (*domain.PaymentPreset, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.presets[presetID]
	if !ok || p.TenantID != tenantID {
		return nil, domain.ErrPresetNotFound
	}
	return &p, nil
}

func (r *presetRepo) Delete(_ context.Context, tenantID, presetID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.presets[presetID]; ok && p.TenantID == tenantID {
		delete(r.s.presets, presetID)
	}
	return nil
}

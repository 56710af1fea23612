// Package memory provides process-local repositories. They back the
// "memory" storage driver and service-level tests.
package memory

import (
	"sync"

	"github.com/google/uuid"

	"fynix/internal/domain"
)

// Store holds all entities behind one mutex so that multi-entity commands
// are atomic.
type Store struct {
	mu        sync.Mutex
	workItems map[uuid.UUID]domain.WorkItem
	invoices  map[uuid.UUID]domain.Invoice
	presets   map[uuid.UUID]domain.PaymentPreset
	companies map[uuid.UUID]domain.Party
	partners  map[partnerKey]domain.Party
}

type partnerKey struct {
	tenantID uuid.UUID
	clientID string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		workItems: make(map[uuid.UUID]domain.WorkItem),
		invoices:  make(map[uuid.UUID]domain.Invoice),
		presets:   make(map[uuid.UUID]domain.PaymentPreset),
		companies: make(map[uuid.UUID]domain.Party),
		partners:  make(map[partnerKey]domain.Party),
	}
}

// PutWorkItems inserts or replaces work items. Work items are owned by the
// task workflow; this is how they enter the store.
func (s *Store) PutWorkItems(items ...domain.WorkItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range items {
		s.workItems[w.ID] = w
	}
}

// WorkItem returns a copy of one work item.
func (s *Store) WorkItem(id uuid.UUID) (domain.WorkItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.workItems[id]
	return w, ok
}

// PutCompanyProfile sets a tenant's sender profile.
func (s *Store) PutCompanyProfile(tenantID uuid.UUID, p domain.Party) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies[tenantID] = p
}

// PutPartnerProfile sets a client profile.
func (s *Store) PutPartnerProfile(tenantID uuid.UUID, clientID string, p domain.Party) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.partners[partnerKey{tenantID, clientID}] = p
}

// cloneInvoice deep-copies slices so callers never alias stored state.
func cloneInvoice(inv domain.Invoice) domain.Invoice {
	inv.LineItems = append([]domain.LineItem(nil), inv.LineItems...)
	inv.Totals.Taxes = append([]domain.TaxLine(nil), inv.Totals.Taxes...)
	return inv
}

// Package session keeps the working set of the single-tenant API: the
// current offer, the last uploaded leads and the last scoring results.
// Everything lives in memory and is gone on restart.
package session

import (
	"slices"
	"sync"

	"lead_scoring_backend/internal/leads/domain"
	"lead_scoring_backend/platform/apperr"
)

// ErrNoOffer is returned by Offer before any offer was saved.
var ErrNoOffer = apperr.NotFound("No offer saved")

// Store is safe for concurrent use. Getters return copies so callers can
// not mutate stored state.
type Store struct {
	mu      sync.RWMutex
	offer   *domain.Offer
	leads   []domain.Lead
	results []domain.ScoreResult
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// SetOffer replaces the current offer.
func (s *Store) SetOffer(offer domain.Offer) {
	o := cloneOffer(offer)
	s.mu.Lock()
	s.offer = &o
	s.mu.Unlock()
}

// Offer returns the current offer or ErrNoOffer.
func (s *Store) Offer() (domain.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.offer == nil {
		return domain.Offer{}, ErrNoOffer
	}
	return cloneOffer(*s.offer), nil
}

// SetLeads replaces the uploaded leads.
func (s *Store) SetLeads(leads []domain.Lead) {
	c := slices.Clone(leads)
	s.mu.Lock()
	s.leads = c
	s.mu.Unlock()
}

// Leads returns the uploaded leads; never nil.
func (s *Store) Leads() []domain.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Lead{}, s.leads...)
}

// SetResults replaces the last scoring results.
func (s *Store) SetResults(results []domain.ScoreResult) {
	c := slices.Clone(results)
	s.mu.Lock()
	s.results = c
	s.mu.Unlock()
}

// Results returns the last scoring results; never nil.
func (s *Store) Results() []domain.ScoreResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ScoreResult{}, s.results...)
}

func cloneOffer(o domain.Offer) domain.Offer {
	o.ValueProps = append([]string{}, o.ValueProps...)
	o.IdealUseCases = append([]string{}, o.IdealUseCases...)
	return o
}

// Package events defines the lead scoring domain events. The bus itself
// lives in platform/events.
package events

import (
	"time"

	"lead_scoring_backend/platform/events"
	"lead_scoring_backend/platform/logger"
)

type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	InMemoryBus = events.InMemoryBus
)

// NewInMemoryBus creates the process-local bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return events.NewInMemoryBus(log)
}

// OfferSaved is published when the current offer is replaced.
type OfferSaved struct {
	Name          string
	IdealUseCases int
}

func (OfferSaved) EventName() string { return "leads.offer.saved" }

// LeadsUploaded is published after a CSV upload was parsed and stored.
type LeadsUploaded struct {
	Count int
}

func (LeadsUploaded) EventName() string { return "leads.upload.completed" }

// ScoringCompleted carries the summary of a finished batch run.
type ScoringCompleted struct {
	RunID     string
	Leads     int
	Fallbacks int
	High      int
	Medium    int
	Low       int
	Duration  time.Duration
}

func (ScoringCompleted) EventName() string { return "leads.scoring.completed" }

// Package leads provides the lead scoring bounded context module.
// This file defines the module that encapsulates all leads setup and route registration.
package leads

import (
	"context"

	"lead_scoring_backend/internal/events"
	apphttp "lead_scoring_backend/internal/http"
	"lead_scoring_backend/internal/leads/handler"
	"lead_scoring_backend/internal/leads/scoring"
	"lead_scoring_backend/internal/leads/session"
	"lead_scoring_backend/platform/config"
	"lead_scoring_backend/platform/logger"
	"lead_scoring_backend/platform/validator"
)

// ModuleConfig is the config slice the leads module reads.
type ModuleConfig interface {
	config.HTTPConfig
	config.ScoringConfig
}

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the leads module with all its dependencies.
// classifier is the fully decorated classification chain built by the
// composition root.
func NewModule(classifier scoring.Classifier, eventBus events.Bus, val *validator.Validator, cfg ModuleConfig, log *logger.Logger) *Module {
	store := session.NewStore()
	svc := scoring.New(classifier, log, scoring.WithConcurrency(cfg.GetScoringConcurrency()))

	eventBus.Subscribe(events.ScoringCompleted{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.ScoringCompleted)
		if !ok {
			return nil
		}
		log.WithContext(ctx).ScoringRun(e.RunID, e.Leads, e.Fallbacks, e.High, e.Medium, e.Low, float64(e.Duration.Milliseconds()))
		return nil
	}))

	h := handler.New(store, svc, eventBus, val, log, cfg.GetMaxUploadBytes())

	return &Module{handler: h}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// RegisterRoutes mounts the offer, leads and score routes at the root.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Root)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

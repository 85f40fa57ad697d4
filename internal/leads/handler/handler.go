package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"lead_scoring_backend/internal/events"
	"lead_scoring_backend/internal/leads/csvio"
	"lead_scoring_backend/internal/leads/domain"
	"lead_scoring_backend/internal/leads/scoring"
	"lead_scoring_backend/internal/leads/session"
	"lead_scoring_backend/internal/leads/transport"
	"lead_scoring_backend/platform/apperr"
	"lead_scoring_backend/platform/httpkit"
	"lead_scoring_backend/platform/logger"
	"lead_scoring_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgMissingOffer     = "Missing name or ideal_use_cases"
	msgFileRequired     = "CSV file required (form field: file)"
	msgParseFailed      = "Failed to parse CSV"
	msgUploadTooLarge   = "CSV file too large"
	msgNoOfferSet       = "No offer set. POST /offer first."
	msgNoLeadsUploaded  = "No leads uploaded. POST /leads/upload first."
	msgScoringFailed    = "Scoring failed"
	msgNoResults        = "No results yet. POST /score first."
	exportFilename      = "scored_leads.csv"
	uploadFormField     = "file"
	defaultMaxUploadMiB = 10
)

// Scorer runs the scoring engine over a batch.
type Scorer interface {
	Run(ctx context.Context, leads []domain.Lead, offer domain.Offer) ([]domain.ScoreResult, scoring.RunSummary, error)
}

type Handler struct {
	store          *session.Store
	scorer         Scorer
	bus            events.Bus
	val            *validator.Validator
	log            *logger.Logger
	maxUploadBytes int64
}

func New(store *session.Store, scorer Scorer, bus events.Bus, val *validator.Validator, log *logger.Logger, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadMiB << 20
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Handler{
		store:          store,
		scorer:         scorer,
		bus:            bus,
		val:            val,
		log:            log,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	offer := rg.Group("/offer")
	offer.POST("", h.SaveOffer)
	offer.GET("", h.GetOffer)

	leads := rg.Group("/leads")
	leads.POST("/upload", h.UploadLeads)
	leads.GET("/all", h.ListLeads)

	score := rg.Group("/score")
	score.POST("", h.Score)
	score.GET("/results", h.ListResults)
	score.GET("/results/export", h.ExportResults)
}

func (h *Handler) SaveOffer(c *gin.Context) {
	var req transport.OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgMissingOffer, validator.Fields(err))
		return
	}

	offer := req.ToDomain()
	h.store.SetOffer(offer)
	h.bus.Publish(c.Request.Context(), events.OfferSaved{
		Name:          offer.Name,
		IdealUseCases: len(offer.IdealUseCases),
	})

	httpkit.JSON(c, http.StatusCreated, transport.OfferSavedResponse{Message: "Offer saved", Offer: offer})
}

func (h *Handler) GetOffer(c *gin.Context) {
	offer, err := h.store.Offer()
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, offer)
}

func (h *Handler) UploadLeads(c *gin.Context) {
	if c.Request.ContentLength > h.maxUploadBytes {
		h.uploadTooLarge(c)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	file, err := c.FormFile(uploadFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.uploadTooLarge(c)
			return
		}
		httpkit.Error(c, http.StatusBadRequest, msgFileRequired, nil)
		return
	}

	f, err := file.Open()
	if err != nil {
		h.log.WithContext(c.Request.Context()).Error("open uploaded csv", "error", err)
		httpkit.Error(c, http.StatusInternalServerError, msgParseFailed, nil)
		return
	}
	defer f.Close()

	leads, err := csvio.ParseLeads(f)
	if err != nil {
		h.log.WithContext(c.Request.Context()).Error("csv parse error", "error", err, "filename", file.Filename)
		httpkit.Error(c, http.StatusInternalServerError, msgParseFailed, nil)
		return
	}

	h.store.SetLeads(leads)
	h.bus.Publish(c.Request.Context(), events.LeadsUploaded{Count: len(leads)})

	httpkit.JSON(c, http.StatusCreated, transport.UploadResponse{
		Message: fmt.Sprintf("Uploaded %d leads", len(leads)),
		Count:   len(leads),
	})
}

func (h *Handler) uploadTooLarge(c *gin.Context) {
	httpkit.HandleError(c, apperr.TooLarge(msgUploadTooLarge).WithDetails(fmt.Sprintf("limit is %d bytes", h.maxUploadBytes)))
}

func (h *Handler) ListLeads(c *gin.Context) {
	httpkit.OK(c, h.store.Leads())
}

func (h *Handler) Score(c *gin.Context) {
	offer, err := h.store.Offer()
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest(msgNoOfferSet))
		return
	}
	leads := h.store.Leads()
	if len(leads) == 0 {
		httpkit.HandleError(c, apperr.BadRequest(msgNoLeadsUploaded))
		return
	}

	results, summary, err := h.scorer.Run(c.Request.Context(), leads, offer)
	if err != nil {
		_ = c.Error(err)
		httpkit.Error(c, http.StatusInternalServerError, msgScoringFailed, err.Error())
		return
	}

	h.store.SetResults(results)
	h.bus.Publish(c.Request.Context(), scoringCompleted(summary, results))

	httpkit.OK(c, transport.ScoreResponse{Message: "Scoring completed", ResultsCount: len(results)})
}

func (h *Handler) ListResults(c *gin.Context) {
	httpkit.OK(c, h.store.Results())
}

func (h *Handler) ExportResults(c *gin.Context) {
	results := h.store.Results()
	if len(results) == 0 {
		httpkit.HandleError(c, apperr.NotFound(msgNoResults))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename))
	c.Header("Content-Type", "text/csv")
	c.Status(http.StatusOK)
	if err := csvio.WriteResults(c.Writer, results); err != nil {
		h.log.WithContext(c.Request.Context()).Error("write results csv", "error", err)
	}
}

func scoringCompleted(summary scoring.RunSummary, results []domain.ScoreResult) events.ScoringCompleted {
	e := events.ScoringCompleted{
		RunID:     summary.RunID,
		Leads:     summary.Leads,
		Fallbacks: summary.Fallbacks,
		Duration:  summary.Duration,
	}
	for _, r := range results {
		switch r.Intent {
		case domain.IntentHigh:
			e.High++
		case domain.IntentMedium:
			e.Medium++
		default:
			e.Low++
		}
	}
	return e
}

package transport

import (
	"lead_scoring_backend/internal/leads/domain"
)

// OfferRequest is the body of POST /offer. ValueProps is optional and
// defaults to an empty list.
type OfferRequest struct {
	Name          string   `json:"name" validate:"required"`
	ValueProps    []string `json:"value_props"`
	IdealUseCases []string `json:"ideal_use_cases" validate:"required"`
}

// ToDomain converts the request to an offer.
func (r OfferRequest) ToDomain() domain.Offer {
	valueProps := r.ValueProps
	if valueProps == nil {
		valueProps = []string{}
	}
	return domain.Offer{
		Name:          r.Name,
		ValueProps:    valueProps,
		IdealUseCases: r.IdealUseCases,
	}
}

type OfferSavedResponse struct {
	Message string       `json:"message"`
	Offer   domain.Offer `json:"offer"`
}

type UploadResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

type ScoreResponse struct {
	Message      string `json:"message"`
	ResultsCount int    `json:"resultsCount"`
}

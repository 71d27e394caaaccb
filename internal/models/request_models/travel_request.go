package request_models

import (
	"math"

	"travelmate/internal/models/response_models"
)

// TravelRequest is the input to itinerary generation. Dates are YYYY-MM-DD,
// budget is CNY.
type TravelRequest struct {
	Destination string  `json:"destination" binding:"required"`
	StartDate   string  `json:"startDate" binding:"required"`
	EndDate     string  `json:"endDate" binding:"required"`
	Budget      float64 `json:"budget" binding:"gte=0"`
	Travelers   int     `json:"travelers" binding:"required,gte=1"`
	Preferences string  `json:"preferences"`
}

// TextPlanRequest carries typed text or a speech transcript.
type TextPlanRequest struct {
	Text string `json:"text" binding:"required"`
}

type BudgetAnalysisRequest struct {
	Itinerary      response_models.TravelItinerary `json:"itinerary"`
	ActualExpenses []float64                       `json:"actualExpenses"`
}

// EnrichItineraryRequest is a TravelItinerary whose budget may be absent.
// An absent or null budget enriches as non-finite and is replaced by the total.
type EnrichItineraryRequest struct {
	response_models.TravelItinerary
	Budget *float64 `json:"budget"`
}

func (r EnrichItineraryRequest) Itinerary() response_models.TravelItinerary {
	it := r.TravelItinerary
	if r.Budget == nil {
		it.Budget = math.NaN()
	} else {
		it.Budget = *r.Budget
	}
	return it
}

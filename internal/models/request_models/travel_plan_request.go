package request_models

import "travelmate/internal/models/response_models"

type CreateTravelPlanRequest struct {
	Title     string                          `json:"title"`
	Itinerary response_models.TravelItinerary `json:"itinerary" binding:"required"`
}

// Nil fields are left untouched.
type UpdateTravelPlanRequest struct {
	Title     *string                          `json:"title"`
	Itinerary *response_models.TravelItinerary `json:"itinerary"`
}

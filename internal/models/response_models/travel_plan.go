package response_models

import (
	"github.com/google/uuid"
)

// Saved plan returned to FE
type TravelPlanResponse struct {
	ID          uuid.UUID       `json:"id"`
	UserID      string          `json:"user_id"`
	Title       string          `json:"title"`
	Destination string          `json:"destination"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	Budget      float64         `json:"budget"`
	Travelers   int             `json:"travelers"`
	Preferences string          `json:"preferences"`
	Itinerary   TravelItinerary `json:"itinerary"`
	CreatedAt   string          `json:"created_at"` // RFC3339
	UpdatedAt   string          `json:"updated_at"`
}

// List item, without the itinerary payload
type TravelPlanListItem struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Destination  string    `json:"destination"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	DurationDays int       `json:"duration_days"` // inclusive
	Budget       float64   `json:"budget"`
	Travelers    int       `json:"travelers"`
	CreatedAt    string    `json:"created_at"`
}

type PlanSummary struct {
	TotalPlans         int64               `json:"total_plans"`
	UpcomingPlans      int64               `json:"upcoming_plans"`
	TotalBudget        float64             `json:"total_budget"`
	TotalEstimatedCost float64             `json:"total_estimated_cost"`
	LatestPlan         *TravelPlanListItem `json:"latest_plan,omitempty"`
	BudgetAnalysis     BudgetAnalysis      `json:"budget_analysis"`
}

type TravelPlanPage struct {
	Items    []TravelPlanListItem `json:"items"`
	Total    int64                `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
}

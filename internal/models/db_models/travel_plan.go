package db_models

import (
	"gorm.io/datatypes"
)

// TravelPlan is a saved itinerary. Itinerary holds the generated payload verbatim.
type TravelPlan struct {
	BaseModel
	UserID      string `gorm:"index;not null"`
	Title       string
	Destination string
	StartDate   string `gorm:"size:10"` // YYYY-MM-DD
	EndDate     string `gorm:"size:10"`
	Budget      float64
	Travelers   int
	Preferences string
	Itinerary   datatypes.JSON
}

func (TravelPlan) TableName() string {
	return "travel_plans"
}

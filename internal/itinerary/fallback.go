package itinerary

import (
	"math"
	"time"

	"travelmate/internal/models/request_models"
	"travelmate/internal/models/response_models"
)

const SimulatedSource = "智能模拟数据"

// Synthesizer builds itineraries locally from destination templates.
type Synthesizer struct {
	tables Tables
}

func NewSynthesizer(tables Tables) *Synthesizer {
	return &Synthesizer{tables: tables}
}

// Synthesize never fails. Dates that cannot be parsed collapse the trip to a
// single day starting today.
func (s *Synthesizer) Synthesize(req request_models.TravelRequest, today time.Time) response_models.TravelItinerary {
	start, end, ok := span(req.StartDate, req.EndDate)
	if !ok {
		start, end = today, today
	}
	duration := InclusiveDays(start, end)

	multiplier := s.tables.TierForBudget(req.Budget).Multiplier
	template, _ := s.tables.Template(req.Destination)

	days := make([]response_models.DayPlan, 0, duration)
	var total float64
	for i := 0; i < duration; i++ {
		activities := make([]response_models.Activity, 0, len(template))
		for _, t := range template {
			cost := math.Round(t.Cost*multiplier*100) / 100
			total += cost
			activities = append(activities, response_models.Activity{
				Time:          t.Time,
				Activity:      t.Activity,
				Location:      t.Location,
				Description:   t.Description,
				EstimatedCost: response_models.KnownCost(cost),
			})
		}
		days = append(days, response_models.DayPlan{
			Date:       start.AddDate(0, 0, i).Format(DateLayout),
			Activities: activities,
		})
	}

	travelers := req.Travelers
	if travelers < 1 {
		travelers = 1
	}

	return response_models.TravelItinerary{
		Destination:        req.Destination,
		Duration:           duration,
		Budget:             req.Budget,
		Travelers:          travelers,
		Preferences:        req.Preferences,
		Days:               days,
		TotalEstimatedCost: math.Round(total*100) / 100,
		Recommendations:    s.recommendations(req.Destination),
		IsAIGenerated:      false,
		Source:             SimulatedSource,
	}
}

func (s *Synthesizer) recommendations(destination string) []string {
	out := make([]string, 0, len(s.tables.BaselineRecommendations)+3)
	out = append(out, s.tables.BaselineRecommendations...)
	return append(out, s.tables.DestinationTips[destination]...)
}

func span(startDate, endDate string) (time.Time, time.Time, bool) {
	start, err := ParseDate(startDate)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := ParseDate(endDate)
	if err != nil || end.Before(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

package response_models

// GenerationOutcome tags which path produced an itinerary.
type GenerationOutcome string

const (
	OutcomeAI             GenerationOutcome = "ai"
	OutcomeParseRecovered GenerationOutcome = "parse_recovered"
	OutcomeFallback       GenerationOutcome = "fallback"
)

type GenerationResult struct {
	Itinerary      TravelItinerary   `json:"itinerary"`
	Outcome        GenerationOutcome `json:"outcome"`
	Reason         string            `json:"reason,omitempty"`
	BudgetAnalysis *BudgetAnalysis   `json:"budgetAnalysis,omitempty"`
}

// Degraded reports whether the external service did not produce the itinerary.
func (r GenerationResult) Degraded() bool {
	return r.Outcome != OutcomeAI
}

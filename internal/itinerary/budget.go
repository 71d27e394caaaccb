package itinerary

import (
	"github.com/samber/lo"

	"travelmate/internal/models/response_models"
)

// AnalyzeBudget compares the itinerary budget with what was actually spent.
// Exactly 30% left over still counts as on track.
func AnalyzeBudget(it response_models.TravelItinerary, expenses []float64) response_models.BudgetAnalysis {
	remaining := it.Budget - lo.Sum(expenses)

	switch {
	case remaining < 0:
		return response_models.BudgetAnalysis{
			BudgetStatus:    response_models.BudgetOver,
			RemainingBudget: remaining,
			Suggestions:     []string{"预算超支，建议减少非必要支出", "考虑选择更经济的住宿和餐饮选项"},
		}
	case remaining > 0.3*it.Budget:
		return response_models.BudgetAnalysis{
			BudgetStatus:    response_models.BudgetUnder,
			RemainingBudget: remaining,
			Suggestions:     []string{"预算充足，可以考虑增加一些体验活动", "可以升级住宿或餐饮选择"},
		}
	default:
		return response_models.BudgetAnalysis{
			BudgetStatus:    response_models.BudgetOnTrack,
			RemainingBudget: remaining,
			Suggestions:     []string{},
		}
	}
}

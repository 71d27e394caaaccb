package response_models

type BudgetStatus string

const (
	BudgetOver    BudgetStatus = "over"
	BudgetUnder   BudgetStatus = "under"
	BudgetOnTrack BudgetStatus = "on_track"
)

type BudgetAnalysis struct {
	BudgetStatus    BudgetStatus `json:"budgetStatus"`
	RemainingBudget float64      `json:"remainingBudget"`
	Suggestions     []string     `json:"suggestions"`
}

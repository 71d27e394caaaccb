package response_models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTravelItinerary_WithBudgetDoesNotShareState(t *testing.T) {
	original := TravelItinerary{
		Destination: "杭州",
		Budget:      1000,
		Days: []DayPlan{{Date: "2024-05-01", Activities: []Activity{
			{Activity: "西湖", EstimatedCost: KnownCost(0)},
		}}},
		Recommendations: []string{"带伞"},
	}

	updated := original.WithBudget(3000)
	updated.Days[0].Activities[0].Activity = "灵隐寺"
	updated.Days[0].Date = "2024-05-02"
	updated.Recommendations[0] = "早起"

	assert.Equal(t, 3000.0, updated.Budget)
	assert.Equal(t, 1000.0, original.Budget)
	require.Len(t, original.Days, 1)
	assert.Equal(t, "2024-05-01", original.Days[0].Date)
	assert.Equal(t, "西湖", original.Days[0].Activities[0].Activity)
	assert.Equal(t, []string{"带伞"}, original.Recommendations)
}

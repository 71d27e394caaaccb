package itinerary

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelmate/internal/models/response_models"
)

func cost(v float64) response_models.Cost { return response_models.KnownCost(v) }

func unknown() response_models.Cost { return response_models.Cost{} }

func fullDay(date string) response_models.DayPlan {
	return response_models.DayPlan{
		Date: date,
		Activities: []response_models.Activity{
			{Time: "08:00", Activity: "早餐", EstimatedCost: cost(40)},
			{Time: "12:00", Activity: "午餐", EstimatedCost: cost(80)},
			{Time: "18:00", Activity: "晚餐", EstimatedCost: cost(120)},
		},
	}
}

func messyItinerary() response_models.TravelItinerary {
	return response_models.TravelItinerary{
		Destination: "东京",
		Budget:      3000,
		Travelers:   3,
		Days: []response_models.DayPlan{
			{
				Date: "2024-05-01",
				Activities: []response_models.Activity{
					{Time: "09:00", Activity: "浅草寺", EstimatedCost: unknown()},
					{Time: "13:00", Activity: "午餐", Description: "拉面", EstimatedCost: cost(-10)},
					{Time: "15:00", Activity: "晴空塔", EstimatedCost: cost(math.NaN())},
				},
			},
			{
				Date:       "2024-05-02",
				Activities: nil,
			},
			{
				Date: "2024-05-03",
				Activities: []response_models.Activity{
					{Time: "10:00", Activity: "退房", Description: "前往机场", EstimatedCost: cost(12.6)},
				},
			},
		},
		TotalEstimatedCost: 99999,
	}
}

func TestRoomsNeeded(t *testing.T) {
	tests := []struct {
		travelers int
		expected  int
	}{
		{travelers: 0, expected: 1},
		{travelers: 1, expected: 1},
		{travelers: 2, expected: 1},
		{travelers: 3, expected: 2},
		{travelers: 4, expected: 2},
		{travelers: 5, expected: 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, RoomsNeeded(tt.travelers, 2), "travelers=%d", tt.travelers)
	}
}

func TestEnricher_Params(t *testing.T) {
	enricher := NewEnricher(DefaultTables(), nil)
	days := []response_models.DayPlan{fullDay("2024-01-01"), fullDay("2024-01-02"), fullDay("2024-01-03")}

	tests := []struct {
		name          string
		budget        float64
		travelers     int
		expectedLevel BudgetLevel
		expectedPrice float64
	}{
		{name: "600 per night is high", budget: 1200, travelers: 2, expectedLevel: LevelHigh, expectedPrice: 600},
		{name: "350 per night is medium", budget: 700, travelers: 2, expectedLevel: LevelMedium, expectedPrice: 350},
		{name: "just under 350 is low", budget: 699.98, travelers: 2, expectedLevel: LevelLow, expectedPrice: 200},
		{name: "rooms scale the nightly price", budget: 0, travelers: 5, expectedLevel: LevelLow, expectedPrice: 600},
		{name: "travelers clamp to one", budget: 5000, travelers: 0, expectedLevel: LevelHigh, expectedPrice: 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := enricher.Params(response_models.TravelItinerary{Budget: tt.budget, Travelers: tt.travelers, Days: days})

			assert.Equal(t, 2, p.Nights)
			assert.Equal(t, tt.expectedLevel, p.Tier.Level)
			assert.Equal(t, tt.expectedPrice, p.LodgingPrice)
			assert.GreaterOrEqual(t, p.Travelers, 1)
		})
	}
}

func TestEnricher_RepairsCostsByCategory(t *testing.T) {
	enricher := NewEnricher(DefaultTables(), nil)
	it := response_models.TravelItinerary{
		Budget:    100,
		Travelers: 2,
		Days: []response_models.DayPlan{{
			Date: "2024-01-01",
			Activities: []response_models.Activity{
				{Activity: "早餐", EstimatedCost: unknown()},
				{Activity: "故宫博物院", EstimatedCost: unknown()},
				{Activity: "打车去机场", EstimatedCost: unknown()},
				{Activity: "夜市", Description: "买特产", EstimatedCost: cost(-1)},
				{Activity: "酒店入住", EstimatedCost: unknown()},
				{Activity: "随便逛逛", EstimatedCost: unknown()},
				{Activity: "咖啡", EstimatedCost: cost(12.6)},
			},
		}},
	}

	out := enricher.Enrich(it)
	acts := out.Days[0].Activities

	assert.Equal(t, 60.0, acts[0].EstimatedCost.Amount, "breakfast 30 per traveler")
	assert.Equal(t, 160.0, acts[1].EstimatedCost.Amount, "admission 80 per traveler")
	assert.Equal(t, 80.0, acts[2].EstimatedCost.Amount, "transit 40 per traveler")
	assert.Equal(t, 300.0, acts[3].EstimatedCost.Amount, "shopping 150 per traveler")
	assert.Equal(t, 200.0, acts[4].EstimatedCost.Amount, "one low tier room")
	assert.Equal(t, 200.0, acts[5].EstimatedCost.Amount, "default 100 per traveler")
	assert.Equal(t, 13.0, acts[6].EstimatedCost.Amount, "existing costs are rounded")
}

func TestEnricher_FirstMatchWins(t *testing.T) {
	enricher := NewEnricher(DefaultTables(), nil)
	it := response_models.TravelItinerary{
		Travelers: 1,
		Days: []response_models.DayPlan{{
			Activities: []response_models.Activity{
				{Activity: "酒店早餐", EstimatedCost: unknown()},
			},
		}},
	}

	out := enricher.Enrich(it)

	assert.Equal(t, 30.0, out.Days[0].Activities[0].EstimatedCost.Amount)
}

func TestEnricher_AppendsMissingMealsInOrder(t *testing.T) {
	enricher := NewEnricher(DefaultTables(), nil)
	it := response_models.TravelItinerary{
		Travelers: 2,
		Days: []response_models.DayPlan{{
			Date: "2024-01-01",
			Activities: []response_models.Activity{
				{Time: "10:00", Activity: "颐和园", EstimatedCost: cost(30)},
				{Time: "13:00", Activity: "午饭", EstimatedCost: cost(100)},
			},
		}},
	}

	out := enricher.Enrich(it)
	acts := out.Days[0].Activities

	require.Len(t, acts, 4)
	assert.Equal(t, "08:00", acts[2].Time)
	assert.Equal(t, "早餐", acts[2].Activity)
	assert.Equal(t, 60.0, acts[2].EstimatedCost.Amount)
	assert.Equal(t, "18:00", acts[3].Time)
	assert.Equal(t, "晚餐", acts[3].Activity)
	assert.Equal(t, 160.0, acts[3].EstimatedCost.Amount)
	assert.Equal(t, 350.0, out.TotalEstimatedCost)
}

func TestEnricher_LodgingSkipsLastDay(t *testing.T) {
	enricher := NewEnricher(DefaultTables(), nil)
	it := response_models.TravelItinerary{
		Budget:    100,
		Travelers: 3,
		Days:      []response_models.DayPlan{fullDay("2024-01-01"), fullDay("2024-01-02")},
	}

	out := enricher.Enrich(it)

	require.Len(t, out.Days[0].Activities, 4)
	lodging := out.Days[0].Activities[3]
	assert.Equal(t, "22:00", lodging.Time)
	assert.Equal(t, "住宿", lodging.Activity)
	assert.Equal(t, "预计 2 间 · 经济", lodging.Description)
	assert.Equal(t, 400.0, lodging.EstimatedCost.Amount)

	assert.Len(t, out.Days[1].Activities, 3, "checkout day gets no lodging")
}

func TestEnricher_LodgingTierLabel(t *testing.T) {
	enricher := NewEnricher(DefaultTables(), nil)
	it := response_models.TravelItinerary{
		Budget:    1200,
		Travelers: 2,
		Days:      []response_models.DayPlan{fullDay("2024-01-01"), fullDay("2024-01-02")},
	}

	out := enricher.Enrich(it)

	lodging := out.Days[0].Activities[3]
	assert.Equal(t, "预计 1 间 · 高档", lodging.Description)
	assert.Equal(t, 600.0, lodging.EstimatedCost.Amount)
}

func TestEnricher_KeepsExistingLodging(t *testing.T) {
	enricher := NewEnricher(DefaultTables(), nil)
	day := fullDay("2024-01-01")
	day.Activities = append(day.Activities, response_models.Activity{Time: "21:00", Activity: "入住民宿", EstimatedCost: cost(300)})
	it := response_models.TravelItinerary{
		Budget:    1000,
		Travelers: 2,
		Days:      []response_models.DayPlan{day, fullDay("2024-01-02")},
	}

	out := enricher.Enrich(it)

	assert.Len(t, out.Days[0].Activities, 4)
	assert.Equal(t, 300.0, out.Days[0].Activities[3].EstimatedCost.Amount)
}

func TestEnricher_Invariants(t *testing.T) {
	tables := DefaultTables()
	enricher := NewEnricher(tables, nil)

	out := enricher.Enrich(messyItinerary())

	var sum float64
	for i, day := range out.Days {
		text := joinText(day.Activities)
		assert.True(t, tables.Matches(CategoryBreakfast, text), "day %d breakfast", i)
		assert.True(t, tables.Matches(CategoryLunch, text), "day %d lunch", i)
		assert.True(t, tables.Matches(CategoryDinner, text), "day %d dinner", i)
		if i < len(out.Days)-1 {
			assert.True(t, tables.Matches(CategoryLodging, text), "day %d lodging", i)
		}

		for _, a := range day.Activities {
			require.True(t, a.EstimatedCost.Usable(), "%s has no usable cost", a.Activity)
			assert.Equal(t, math.Round(a.EstimatedCost.Amount), a.EstimatedCost.Amount)
			sum += a.EstimatedCost.Amount
		}
	}
	assert.Equal(t, sum, out.TotalEstimatedCost)
	assert.NotEqual(t, 99999.0, out.TotalEstimatedCost)

	last := out.Days[len(out.Days)-1]
	for _, a := range last.Activities {
		assert.NotEqual(t, "住宿", a.Activity, "last day must not get lodging")
	}
}

func TestEnricher_Idempotent(t *testing.T) {
	enricher := NewEnricher(DefaultTables(), nil)

	once := enricher.Enrich(messyItinerary())
	twice := enricher.Enrich(once)

	assert.Equal(t, once, twice)
}

func TestEnricher_DoesNotMutateInput(t *testing.T) {
	enricher := NewEnricher(DefaultTables(), nil)
	in := messyItinerary()
	before := in.Clone()

	_ = enricher.Enrich(in)

	require.Len(t, in.Days[0].Activities, 3)
	assert.False(t, in.Days[0].Activities[0].EstimatedCost.Known)
	assert.Equal(t, before.TotalEstimatedCost, in.TotalEstimatedCost)
	assert.Nil(t, in.Days[1].Activities)
}

func TestEnricher_NonFiniteBudgetBecomesTotal(t *testing.T) {
	enricher := NewEnricher(DefaultTables(), nil)

	for _, budget := range []float64{math.NaN(), math.Inf(1)} {
		it := response_models.TravelItinerary{
			Budget:    budget,
			Travelers: 1,
			Days:      []response_models.DayPlan{fullDay("2024-01-01")},
		}

		out := enricher.Enrich(it)

		assert.Equal(t, 240.0, out.TotalEstimatedCost)
		assert.Equal(t, out.TotalEstimatedCost, out.Budget)
	}
}

func TestEnricher_EmptyItinerary(t *testing.T) {
	enricher := NewEnricher(DefaultTables(), nil)

	out := enricher.Enrich(response_models.TravelItinerary{Budget: 500})

	assert.NotNil(t, out.Days)
	assert.Empty(t, out.Days)
	assert.NotNil(t, out.Recommendations)
	assert.Equal(t, 0.0, out.TotalEstimatedCost)
	assert.Equal(t, 500.0, out.Budget)
}

func TestEnricher_AlternateTables(t *testing.T) {
	tables := DefaultTables()
	tables.DefaultPerTraveler = 10
	enricher := NewEnricher(tables, nil)
	it := response_models.TravelItinerary{
		Travelers: 2,
		Days: []response_models.DayPlan{{
			Activities: []response_models.Activity{
				{Activity: "早午晚饭都在这", EstimatedCost: cost(0)},
				{Activity: "发呆", EstimatedCost: unknown()},
			},
		}},
	}

	out := enricher.Enrich(it)

	require.Len(t, out.Days[0].Activities, 2)
	assert.Equal(t, 20.0, out.Days[0].Activities[1].EstimatedCost.Amount)
}

package response_models

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/spf13/cast"
)

// Cost is a CNY amount that may be unknown. Upstream models send numbers,
// numeric strings, null or nothing at all; anything that is not a number
// decodes as an unknown cost.
type Cost struct {
	Amount float64
	Known  bool
}

func KnownCost(amount float64) Cost {
	return Cost{Amount: amount, Known: true}
}

// ParseCost converts a loosely typed JSON value into a Cost.
func ParseCost(v any) Cost {
	switch v.(type) {
	case nil, bool, map[string]any, []any:
		return Cost{}
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return Cost{}
	}
	return KnownCost(f)
}

// Usable reports whether the cost is known, finite and non-negative.
func (c Cost) Usable() bool {
	return c.Known && !math.IsNaN(c.Amount) && !math.IsInf(c.Amount, 0) && c.Amount >= 0
}

func (c Cost) MarshalJSON() ([]byte, error) {
	if !c.Known || math.IsNaN(c.Amount) || math.IsInf(c.Amount, 0) {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(c.Amount, 'f', -1, 64)), nil
}

func (c *Cost) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = ParseCost(v)
	return nil
}

type Activity struct {
	Time          string `json:"time"`
	Activity      string `json:"activity"`
	Location      string `json:"location"`
	Description   string `json:"description"`
	EstimatedCost Cost   `json:"estimatedCost"`
}

type DayPlan struct {
	Date       string     `json:"date"`
	Activities []Activity `json:"activities"`
}

type TravelItinerary struct {
	Destination        string    `json:"destination"`
	Duration           int       `json:"duration"`
	Budget             float64   `json:"budget"`
	Travelers          int       `json:"travelers"`
	Preferences        string    `json:"preferences"`
	Days               []DayPlan `json:"days"`
	TotalEstimatedCost float64   `json:"totalEstimatedCost"`
	Recommendations    []string  `json:"recommendations"`
	IsAIGenerated      bool      `json:"isAIGenerated"`
	Source             string    `json:"source,omitempty"`
}

// WithBudget returns a deep copy of the itinerary carrying the given budget.
func (t TravelItinerary) WithBudget(budget float64) TravelItinerary {
	out := t.Clone()
	out.Budget = budget
	return out
}

// Clone returns a deep copy; days, activities and recommendations are not shared.
func (t TravelItinerary) Clone() TravelItinerary {
	out := t
	if t.Days != nil {
		out.Days = make([]DayPlan, len(t.Days))
		for i, d := range t.Days {
			out.Days[i] = DayPlan{Date: d.Date}
			if d.Activities != nil {
				out.Days[i].Activities = make([]Activity, len(d.Activities))
				copy(out.Days[i].Activities, d.Activities)
			}
		}
	}
	if t.Recommendations != nil {
		out.Recommendations = make([]string, len(t.Recommendations))
		copy(out.Recommendations, t.Recommendations)
	}
	return out
}

// FirstDate and LastDate return the dates of the outer days, or "" when empty.
func (t TravelItinerary) FirstDate() string {
	if len(t.Days) == 0 {
		return ""
	}
	return t.Days[0].Date
}

func (t TravelItinerary) LastDate() string {
	if len(t.Days) == 0 {
		return ""
	}
	return t.Days[len(t.Days)-1].Date
}

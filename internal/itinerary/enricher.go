package itinerary

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"travelmate/internal/models/response_models"
)

// Enricher repairs activity costs, fills in missing meals and lodging and
// recomputes the itinerary total.
type Enricher struct {
	tables Tables
	logger *zap.Logger
}

func NewEnricher(tables Tables, logger *zap.Logger) *Enricher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Enricher{tables: tables, logger: logger}
}

// Params are the per-itinerary values derived before any day is processed.
type Params struct {
	Travelers    int
	Nights       int
	PerNight     float64
	Tier         Tier
	RoomsNeeded  int
	LodgingPrice float64
}

func (e *Enricher) Params(it response_models.TravelItinerary) Params {
	travelers := it.Travelers
	if travelers < 1 {
		travelers = 1
	}
	nights := len(it.Days) - 1
	if nights < 1 {
		nights = 1
	}
	perNight := it.Budget / float64(nights)
	tier := e.tables.TierForNight(perNight)
	rooms := RoomsNeeded(travelers, e.tables.TravelersPerRoom)

	return Params{
		Travelers:    travelers,
		Nights:       nights,
		PerNight:     perNight,
		Tier:         tier,
		RoomsNeeded:  rooms,
		LodgingPrice: tier.PerRoomNight * float64(rooms),
	}
}

// RoomsNeeded returns how many rooms the party occupies.
func RoomsNeeded(travelers, perRoom int) int {
	if perRoom < 1 {
		perRoom = 1
	}
	rooms := int(math.Ceil(float64(travelers) / float64(perRoom)))
	if rooms < 1 {
		return 1
	}
	return rooms
}

// Enrich returns a cost-complete copy of it. The argument is left untouched.
func (e *Enricher) Enrich(it response_models.TravelItinerary) response_models.TravelItinerary {
	out := it.Clone()
	p := e.Params(out)

	e.logger.Debug("enriching itinerary",
		zap.String("destination", out.Destination),
		zap.Int("days", len(out.Days)),
		zap.Int("travelers", p.Travelers),
		zap.Float64("budget_per_night", p.PerNight),
		zap.String("budget_level", string(p.Tier.Level)),
		zap.Int("rooms_needed", p.RoomsNeeded),
	)

	if out.Days == nil {
		out.Days = []response_models.DayPlan{}
	}
	for i := range out.Days {
		last := i == len(out.Days)-1
		out.Days[i] = e.enrichDay(out.Days[i], p, last)
	}

	var total float64
	for _, d := range out.Days {
		for _, a := range d.Activities {
			total += a.EstimatedCost.Amount
		}
	}
	out.TotalEstimatedCost = math.Round(total)

	if math.IsNaN(out.Budget) || math.IsInf(out.Budget, 0) {
		out.Budget = out.TotalEstimatedCost
	}
	if out.Recommendations == nil {
		out.Recommendations = []string{}
	}
	return out
}

func (e *Enricher) enrichDay(day response_models.DayPlan, p Params, last bool) response_models.DayPlan {
	if day.Activities == nil {
		day.Activities = []response_models.Activity{}
	}

	repaired := 0
	for i, a := range day.Activities {
		if !a.EstimatedCost.Usable() {
			a.EstimatedCost = response_models.KnownCost(e.inferCost(a.Activity+" "+a.Description, p))
			repaired++
		}
		a.EstimatedCost = response_models.KnownCost(math.Round(a.EstimatedCost.Amount))
		day.Activities[i] = a
	}

	dayText := joinText(day.Activities)

	var added []string
	for _, meal := range e.tables.Meals {
		if e.tables.Matches(meal.Category, dayText) {
			continue
		}
		day.Activities = append(day.Activities, response_models.Activity{
			Time:          meal.Time,
			Activity:      meal.Activity,
			Location:      meal.Location,
			Description:   meal.Description,
			EstimatedCost: response_models.KnownCost(math.Round(e.perTraveler(meal.Category) * float64(p.Travelers))),
		})
		added = append(added, string(meal.Category))
	}

	if !last && !e.tables.Matches(CategoryLodging, dayText) {
		lodging := e.tables.Lodging
		day.Activities = append(day.Activities, response_models.Activity{
			Time:          lodging.Time,
			Activity:      lodging.Activity,
			Location:      lodging.Location,
			Description:   fmt.Sprintf("预计 %d 间 · %s", p.RoomsNeeded, p.Tier.Label),
			EstimatedCost: response_models.KnownCost(math.Round(p.LodgingPrice)),
		})
		added = append(added, string(CategoryLodging))
	}

	if repaired > 0 || len(added) > 0 {
		e.logger.Debug("day enriched",
			zap.String("date", day.Date),
			zap.Int("costs_repaired", repaired),
			zap.Strings("inserted", added),
		)
	}
	return day
}

func (e *Enricher) inferCost(text string, p Params) float64 {
	for _, r := range e.tables.Rules {
		if !r.Pattern.MatchString(text) {
			continue
		}
		if r.Basis == PerRoomNight {
			return p.LodgingPrice
		}
		return r.Amount * float64(p.Travelers)
	}
	return e.tables.DefaultPerTraveler * float64(p.Travelers)
}

func (e *Enricher) perTraveler(c Category) float64 {
	if r, ok := e.tables.Rule(c); ok {
		return r.Amount
	}
	return e.tables.DefaultPerTraveler
}

func joinText(activities []response_models.Activity) string {
	var b strings.Builder
	for _, a := range activities {
		b.WriteString(a.Activity)
		b.WriteByte(' ')
		b.WriteString(a.Description)
		b.WriteByte(' ')
	}
	return b.String()
}

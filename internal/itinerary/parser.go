package itinerary

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cast"

	"travelmate/internal/models/response_models"
)

const UnknownDestination = "未知目的地"

var (
	fenceOpen   = regexp.MustCompile("^```[A-Za-z0-9_-]*\\s*")
	fenceClose  = regexp.MustCompile("\\s*```$")
	destination = regexp.MustCompile(`(?i)(?:目的地|destination)\s*[:：]\s*([^\n\r,，]+)`)
)

// ParseResult is the outcome of ParseResponse. Recovered is set when the
// JSON could not be decoded and the itinerary came from the text heuristic.
type ParseResult struct {
	Itinerary response_models.TravelItinerary
	Recovered bool
}

// ParseResponse turns raw model output into an itinerary. It never fails:
// text that cannot be decoded yields a synthetic one-day itinerary dated today.
func ParseResponse(raw string, today time.Time) ParseResult {
	candidate := cleanJSON(raw)

	var doc map[string]any
	if candidate == "" || json.Unmarshal([]byte(candidate), &doc) != nil || doc == nil {
		return ParseResult{Itinerary: extractFromText(raw, today), Recovered: true}
	}
	return ParseResult{Itinerary: toItinerary(doc)}
}

func cleanJSON(raw string) string {
	s := strings.TrimSpace(raw)
	s = fenceOpen.ReplaceAllString(s, "")
	s = fenceClose.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		return s
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// toItinerary maps a decoded object field by field. A field with the wrong
// shape takes its default instead of failing the document.
func toItinerary(doc map[string]any) response_models.TravelItinerary {
	days := objects(doc["days"])
	recs := list(doc["recommendations"])

	it := response_models.TravelItinerary{
		Destination:        text(doc["destination"]),
		Budget:             number(doc["budget"]),
		Travelers:          1,
		Preferences:        text(doc["preferences"]),
		Days:               make([]response_models.DayPlan, 0, len(days)),
		TotalEstimatedCost: number(doc["totalEstimatedCost"]),
		Recommendations:    make([]string, 0, len(recs)),
	}

	if t, err := cast.ToFloat64E(doc["travelers"]); err == nil && !math.IsNaN(t) && t >= 1 {
		it.Travelers = int(math.Round(t))
	}

	for _, d := range days {
		activities := objects(d["activities"])
		day := response_models.DayPlan{
			Date:       text(d["date"]),
			Activities: make([]response_models.Activity, 0, len(activities)),
		}
		for _, a := range activities {
			day.Activities = append(day.Activities, response_models.Activity{
				Time:          text(a["time"]),
				Activity:      text(a["activity"]),
				Location:      text(a["location"]),
				Description:   text(a["description"]),
				EstimatedCost: response_models.ParseCost(a["estimatedCost"]),
			})
		}
		it.Days = append(it.Days, day)
	}

	for _, rec := range recs {
		if s := text(rec); s != "" {
			it.Recommendations = append(it.Recommendations, s)
		}
	}

	it.Duration = len(it.Days)
	if it.Duration == 0 {
		it.Duration = 1
	}
	return it
}

// list returns v as a slice, or nil when it is not an array.
func list(v any) []any {
	items, _ := v.([]any)
	return items
}

// objects keeps the elements of an array that are JSON objects.
func objects(v any) []map[string]any {
	var out []map[string]any
	for _, item := range list(v) {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// extractFromText recovers what it can from prose output.
func extractFromText(raw string, today time.Time) response_models.TravelItinerary {
	dest := UnknownDestination
	if m := destination.FindStringSubmatch(raw); m != nil {
		if v := strings.Trim(strings.TrimSpace(m[1]), `"'“”`); v != "" {
			dest = v
		}
	}

	return response_models.TravelItinerary{
		Destination: dest,
		Duration:    3,
		Budget:      5000,
		Travelers:   1,
		Days: []response_models.DayPlan{{
			Date: today.Format(DateLayout),
			Activities: []response_models.Activity{
				{Time: "09:00", Activity: "早餐", Location: "酒店", Description: "享用当地特色早餐", EstimatedCost: response_models.KnownCost(50)},
				{Time: "10:00", Activity: "景点游览", Location: dest, Description: "游览当地著名景点", EstimatedCost: response_models.KnownCost(200)},
				{Time: "12:00", Activity: "午餐", Location: "当地餐厅", Description: "品尝当地美食", EstimatedCost: response_models.KnownCost(150)},
				{Time: "18:00", Activity: "晚餐", Location: "特色餐厅", Description: "享用特色晚餐", EstimatedCost: response_models.KnownCost(250)},
			},
		}},
		TotalEstimatedCost: 650,
		Recommendations:    []string{"建议提前预订酒店", "注意当地天气变化", "准备必要的旅行用品"},
	}
}

func text(v any) string {
	switch v.(type) {
	case nil, map[string]any, []any:
		return ""
	}
	return strings.TrimSpace(cast.ToString(v))
}

func number(v any) float64 {
	c := response_models.ParseCost(v)
	if !c.Known {
		return 0
	}
	return c.Amount
}

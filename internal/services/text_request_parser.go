package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/width"

	"travelmate/internal/itinerary"
	"travelmate/internal/models/request_models"
)

const (
	defaultTextDuration = 5
	defaultTextBudget   = 10000
)

var (
	textDestination = regexp.MustCompile(`(?:去|到|前往)([^，,。！!？?；;\s\d]+)`)
	textFiller      = regexp.MustCompile(`(?:玩|旅游|旅行|游玩|度假|看看|逛逛|待|住)+$`)
	textDuration    = regexp.MustCompile(`(\d+)\s*天`)
	textBudget      = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(万|千|元|块)`)
	textTravelers   = regexp.MustCompile(`(\d+)\s*(?:个人|人|位)`)

	narrowDigits = runes.If(runes.Predicate(func(r rune) bool {
		return r >= '０' && r <= '９' || r == '．'
	}), width.Narrow, nil)
)

// TextRequestParser derives a TravelRequest from typed text or a speech
// transcript such as "下周去成都玩4天，预算5千，2个人".
type TextRequestParser struct{}

func NewTextRequestParser() *TextRequestParser {
	return &TextRequestParser{}
}

func (p *TextRequestParser) Parse(text string, today time.Time) request_models.TravelRequest {
	normalized, _, err := transform.String(narrowDigits, text)
	if err != nil {
		normalized = text
	}

	destination := itinerary.UnknownDestination
	if m := textDestination.FindStringSubmatch(normalized); m != nil {
		if d := strings.TrimFunc(textFiller.ReplaceAllString(m[1], ""), unicode.IsSpace); d != "" {
			destination = d
		}
	}

	duration := defaultTextDuration
	if m := textDuration.FindStringSubmatch(normalized); m != nil {
		if d, err := strconv.Atoi(m[1]); err == nil && d > 0 {
			duration = d
		}
	}

	budget := float64(defaultTextBudget)
	if m := textBudget.FindStringSubmatch(normalized); m != nil {
		if b, err := strconv.ParseFloat(m[1], 64); err == nil {
			switch m[2] {
			case "万":
				b *= 10000
			case "千":
				b *= 1000
			}
			budget = b
		}
	}

	travelers := 1
	if m := textTravelers.FindStringSubmatch(normalized); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			travelers = n
		}
	}

	return request_models.TravelRequest{
		Destination: destination,
		StartDate:   today.Format(itinerary.DateLayout),
		EndDate:     today.AddDate(0, 0, duration-1).Format(itinerary.DateLayout),
		Budget:      budget,
		Travelers:   travelers,
		Preferences: strings.TrimSpace(text),
	}
}

package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"travelmate/internal/itinerary"
	"travelmate/internal/models/request_models"
	"travelmate/internal/models/response_models"
	"travelmate/pkg/memcache"
	"travelmate/pkg/utils"
)

const TextExtractionSource = "文本提取"

type ItineraryServiceInterface interface {
	// Generate always yields a usable itinerary; only invalid input is an error.
	Generate(ctx context.Context, req request_models.TravelRequest) (response_models.GenerationResult, error)
	GenerateFromText(ctx context.Context, text string) (response_models.GenerationResult, error)
	AnalyzeBudget(it response_models.TravelItinerary, expenses []float64) (response_models.BudgetAnalysis, error)
	Enrich(it response_models.TravelItinerary) response_models.TravelItinerary
}

type ItineraryService struct {
	generator   utils.TextGenerator
	enricher    *itinerary.Enricher
	synthesizer *itinerary.Synthesizer
	textParser  *TextRequestParser
	cache       memcache.ItineraryCache
	logger      *zap.Logger
	maxTripDays int
	today       func() time.Time
}

type ItineraryServiceOption func(*ItineraryService)

// WithClock replaces the source of "today", used for synthetic dates.
func WithClock(today func() time.Time) ItineraryServiceOption {
	return func(s *ItineraryService) { s.today = today }
}

func NewItineraryService(
	generator utils.TextGenerator,
	tables itinerary.Tables,
	cache memcache.ItineraryCache,
	logger *zap.Logger,
	maxTripDays int,
	opts ...ItineraryServiceOption,
) ItineraryServiceInterface {
	s := &ItineraryService{
		generator:   generator,
		enricher:    itinerary.NewEnricher(tables, logger),
		synthesizer: itinerary.NewSynthesizer(tables),
		textParser:  NewTextRequestParser(),
		cache:       cache,
		logger:      logger,
		maxTripDays: maxTripDays,
		today:       utils.Today,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ItineraryService) Generate(ctx context.Context, req request_models.TravelRequest) (response_models.GenerationResult, error) {
	req.Destination = strings.TrimSpace(req.Destination)
	if err := s.validate(req); err != nil {
		return response_models.GenerationResult{}, err
	}

	result := s.generate(ctx, req)

	// the figure the user entered stays authoritative for display
	result.Itinerary = result.Itinerary.WithBudget(req.Budget)
	analysis := itinerary.AnalyzeBudget(result.Itinerary, []float64{result.Itinerary.TotalEstimatedCost})
	result.BudgetAnalysis = &analysis

	s.logger.Info("itinerary generated",
		zap.String("destination", req.Destination),
		zap.String("outcome", string(result.Outcome)),
		zap.String("reason", result.Reason),
		zap.Int("days", len(result.Itinerary.Days)),
		zap.Float64("total_estimated_cost", result.Itinerary.TotalEstimatedCost),
	)
	return result, nil
}

func (s *ItineraryService) generate(ctx context.Context, req request_models.TravelRequest) response_models.GenerationResult {
	key := s.fingerprint(req)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			s.logger.Debug("itinerary cache hit", zap.String("key", key))
			return response_models.GenerationResult{Itinerary: cached, Outcome: response_models.OutcomeAI}
		}
	}

	raw, err := s.generator.Generate(ctx, itinerary.BuildPrompt(req))
	if err == nil && strings.TrimSpace(raw) == "" {
		err = utils.ErrEmptyCompletion
	}
	if err != nil {
		s.logger.Warn("text generation failed, using simulated itinerary",
			zap.String("provider", s.generator.Name()),
			zap.Error(err),
		)
		return response_models.GenerationResult{
			Itinerary: s.enricher.Enrich(s.synthesizer.Synthesize(req, s.today())),
			Outcome:   response_models.OutcomeFallback,
			Reason:    err.Error(),
		}
	}

	parsed := itinerary.ParseResponse(raw, s.today())
	enriched := s.enricher.Enrich(carryOver(parsed.Itinerary, req))

	if parsed.Recovered {
		s.logger.Warn("model output was not valid JSON, recovered from text",
			zap.String("provider", s.generator.Name()),
			zap.Int("raw_length", len(raw)),
		)
		enriched.IsAIGenerated = false
		enriched.Source = TextExtractionSource
		return response_models.GenerationResult{
			Itinerary: enriched,
			Outcome:   response_models.OutcomeParseRecovered,
			Reason:    "model output was not a JSON object",
		}
	}

	enriched.IsAIGenerated = true
	enriched.Source = s.generator.Name()
	if s.cache != nil {
		s.cache.Set(ctx, key, enriched)
	}
	return response_models.GenerationResult{Itinerary: enriched, Outcome: response_models.OutcomeAI}
}

func (s *ItineraryService) GenerateFromText(ctx context.Context, text string) (response_models.GenerationResult, error) {
	if strings.TrimSpace(text) == "" {
		return response_models.GenerationResult{}, fmt.Errorf("%w: text is empty", utils.ErrInvalidInput)
	}
	return s.Generate(ctx, s.clampTrip(s.textParser.Parse(text, s.today())))
}

// clampTrip shortens a derived trip to the configured maximum instead of
// rejecting it.
func (s *ItineraryService) clampTrip(req request_models.TravelRequest) request_models.TravelRequest {
	if s.maxTripDays < 1 {
		return req
	}
	start, errStart := itinerary.ParseDate(req.StartDate)
	end, errEnd := itinerary.ParseDate(req.EndDate)
	if errStart != nil || errEnd != nil || itinerary.InclusiveDays(start, end) <= s.maxTripDays {
		return req
	}
	req.EndDate = start.AddDate(0, 0, s.maxTripDays-1).Format(itinerary.DateLayout)
	return req
}

func (s *ItineraryService) AnalyzeBudget(it response_models.TravelItinerary, expenses []float64) (response_models.BudgetAnalysis, error) {
	for _, e := range expenses {
		if math.IsNaN(e) || math.IsInf(e, 0) || e < 0 {
			return response_models.BudgetAnalysis{}, fmt.Errorf("%w: expenses must be non-negative numbers", utils.ErrInvalidInput)
		}
	}
	return itinerary.AnalyzeBudget(it, expenses), nil
}

func (s *ItineraryService) Enrich(it response_models.TravelItinerary) response_models.TravelItinerary {
	return s.enricher.Enrich(it)
}

func (s *ItineraryService) validate(req request_models.TravelRequest) error {
	if req.Destination == "" {
		return fmt.Errorf("%w: destination is required", utils.ErrInvalidInput)
	}
	start, err := itinerary.ParseDate(req.StartDate)
	if err != nil {
		return fmt.Errorf("%w: startDate must be YYYY-MM-DD", utils.ErrInvalidInput)
	}
	end, err := itinerary.ParseDate(req.EndDate)
	if err != nil {
		return fmt.Errorf("%w: endDate must be YYYY-MM-DD", utils.ErrInvalidInput)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: endDate is before startDate", utils.ErrInvalidInput)
	}
	if s.maxTripDays > 0 && itinerary.InclusiveDays(start, end) > s.maxTripDays {
		return fmt.Errorf("%w: trips are limited to %d days", utils.ErrInvalidInput, s.maxTripDays)
	}
	if math.IsNaN(req.Budget) || math.IsInf(req.Budget, 0) || req.Budget < 0 {
		return fmt.Errorf("%w: budget must be a non-negative number", utils.ErrInvalidInput)
	}
	if req.Travelers < 1 {
		return fmt.Errorf("%w: travelers must be at least 1", utils.ErrInvalidInput)
	}
	return nil
}

// carryOver fills request fields the model left out. Travelers always come
// from the request.
func carryOver(it response_models.TravelItinerary, req request_models.TravelRequest) response_models.TravelItinerary {
	if it.Destination == "" || it.Destination == itinerary.UnknownDestination {
		it.Destination = req.Destination
	}
	if it.Preferences == "" {
		it.Preferences = req.Preferences
	}
	it.Travelers = req.Travelers
	return it
}

// fingerprint keys the cache on everything that shapes the prompt.
func (s *ItineraryService) fingerprint(req request_models.TravelRequest) string {
	parts := []string{
		s.generator.Name(),
		strings.ToLower(req.Destination),
		req.StartDate,
		req.EndDate,
		strconv.FormatFloat(req.Budget, 'f', -1, 64),
		strconv.Itoa(req.Travelers),
		strings.TrimSpace(req.Preferences),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])[:16]
}

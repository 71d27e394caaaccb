package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"travelmate/internal/itinerary"
	"travelmate/internal/models/db_models"
	"travelmate/internal/models/request_models"
	"travelmate/internal/models/response_models"
	"travelmate/internal/repositories"
	"travelmate/pkg/utils"
)

type TravelPlanServiceInterface interface {
	CreatePlan(ctx context.Context, userID string, req request_models.CreateTravelPlanRequest) (*response_models.TravelPlanResponse, error)
	GetPlan(ctx context.Context, userID, planID string) (*response_models.TravelPlanResponse, error)
	ListPlans(ctx context.Context, userID string, page, pageSize int) (*response_models.TravelPlanPage, error)
	UpdatePlan(ctx context.Context, userID, planID string, req request_models.UpdateTravelPlanRequest) (*response_models.TravelPlanResponse, error)
	DeletePlan(ctx context.Context, userID, planID string) error
	Summary(ctx context.Context, userID string) (*response_models.PlanSummary, error)
}

type TravelPlanService struct {
	repo   repositories.ITravelPlanRepository
	logger *zap.Logger
	today  func() time.Time
}

func NewTravelPlanService(repo repositories.ITravelPlanRepository, logger *zap.Logger) TravelPlanServiceInterface {
	return &TravelPlanService{repo: repo, logger: logger, today: utils.Today}
}

// PlanTitle is the default title for a saved itinerary, e.g. "成都 3日游".
func PlanTitle(it response_models.TravelItinerary) string {
	duration := it.Duration
	if duration < 1 {
		duration = len(it.Days)
	}
	return it.Destination + " " + strconv.Itoa(duration) + "日游"
}

func (s *TravelPlanService) CreatePlan(ctx context.Context, userID string, req request_models.CreateTravelPlanRequest) (*response_models.TravelPlanResponse, error) {
	if strings.TrimSpace(req.Itinerary.Destination) == "" {
		return nil, fmt.Errorf("%w: itinerary destination is required", utils.ErrInvalidInput)
	}

	plan := &db_models.TravelPlan{UserID: userID}
	if err := applyItinerary(plan, req.Itinerary); err != nil {
		return nil, err
	}
	plan.Title = strings.TrimSpace(req.Title)
	if plan.Title == "" {
		plan.Title = PlanTitle(req.Itinerary)
	}

	if err := s.repo.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	s.logger.Info("travel plan saved", zap.String("plan_id", plan.ID.String()), zap.String("user_id", userID))
	return toPlanResponse(plan)
}

func (s *TravelPlanService) GetPlan(ctx context.Context, userID, planID string) (*response_models.TravelPlanResponse, error) {
	plan, err := s.ownedPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	return toPlanResponse(plan)
}

func (s *TravelPlanService) ListPlans(ctx context.Context, userID string, page, pageSize int) (*response_models.TravelPlanPage, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	plans, total, err := s.repo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	return &response_models.TravelPlanPage{
		Items:    lo.Map(plans, func(p db_models.TravelPlan, _ int) response_models.TravelPlanListItem { return toListItem(p) }),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *TravelPlanService) UpdatePlan(ctx context.Context, userID, planID string, req request_models.UpdateTravelPlanRequest) (*response_models.TravelPlanResponse, error) {
	id, err := uuid.Parse(planID)
	if err != nil {
		return nil, utils.ErrPlanNotFound
	}

	plan, err := s.repo.UpdateWith(ctx, id, func(plan *db_models.TravelPlan) error {
		if plan == nil {
			return utils.ErrPlanNotFound
		}
		if plan.UserID != userID {
			return utils.ErrForbidden
		}
		if req.Itinerary != nil {
			if err := applyItinerary(plan, *req.Itinerary); err != nil {
				return err
			}
		}
		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if title == "" {
				return fmt.Errorf("%w: title cannot be empty", utils.ErrInvalidInput)
			}
			plan.Title = title
		}
		return nil
	})
	if err != nil {
		return nil, serviceError(err)
	}
	return toPlanResponse(plan)
}

func (s *TravelPlanService) DeletePlan(ctx context.Context, userID, planID string) error {
	plan, err := s.ownedPlan(ctx, userID, planID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, plan.ID); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	s.logger.Info("travel plan deleted", zap.String("plan_id", planID), zap.String("user_id", userID))
	return nil
}

// Summary aggregates every plan of a user for the dashboard.
func (s *TravelPlanService) Summary(ctx context.Context, userID string) (*response_models.PlanSummary, error) {
	plans, err := s.repo.ListAllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	today := s.today().Format(itinerary.DateLayout)
	estimates := lo.Map(plans, func(p db_models.TravelPlan, _ int) float64 {
		it, err := decodeItinerary(p.Itinerary)
		if err != nil {
			s.logger.Warn("skipping unreadable itinerary", zap.String("plan_id", p.ID.String()), zap.Error(err))
			return 0
		}
		return it.TotalEstimatedCost
	})

	totalBudget := lo.SumBy(plans, func(p db_models.TravelPlan) float64 { return p.Budget })
	summary := &response_models.PlanSummary{
		TotalPlans:         int64(len(plans)),
		UpcomingPlans:      int64(lo.CountBy(plans, func(p db_models.TravelPlan) bool { return p.StartDate >= today })),
		TotalBudget:        totalBudget,
		TotalEstimatedCost: lo.Sum(estimates),
		BudgetAnalysis:     itinerary.AnalyzeBudget(response_models.TravelItinerary{Budget: totalBudget}, estimates),
	}
	if len(plans) > 0 {
		latest := toListItem(plans[0])
		summary.LatestPlan = &latest
	}
	return summary, nil
}

func (s *TravelPlanService) ownedPlan(ctx context.Context, userID, planID string) (*db_models.TravelPlan, error) {
	id, err := uuid.Parse(planID)
	if err != nil {
		return nil, utils.ErrPlanNotFound
	}
	plan, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}
	if plan.UserID != userID {
		return nil, utils.ErrForbidden
	}
	return plan, nil
}

// applyItinerary stores the payload verbatim and refreshes the columns derived from it.
func applyItinerary(plan *db_models.TravelPlan, it response_models.TravelItinerary) error {
	payload, err := json.Marshal(it)
	if err != nil {
		return fmt.Errorf("%w: itinerary cannot be encoded: %v", utils.ErrInvalidInput, err)
	}
	plan.Itinerary = datatypes.JSON(payload)
	plan.Destination = it.Destination
	plan.StartDate = it.FirstDate()
	plan.EndDate = it.LastDate()
	plan.Budget = it.Budget
	plan.Travelers = it.Travelers
	plan.Preferences = it.Preferences
	return nil
}

func decodeItinerary(data datatypes.JSON) (response_models.TravelItinerary, error) {
	var it response_models.TravelItinerary
	if len(data) == 0 {
		return it, nil
	}
	err := json.Unmarshal(data, &it)
	return it, err
}

func toPlanResponse(plan *db_models.TravelPlan) (*response_models.TravelPlanResponse, error) {
	it, err := decodeItinerary(plan.Itinerary)
	if err != nil {
		return nil, fmt.Errorf("%w: stored itinerary is unreadable: %v", utils.ErrDatabaseError, err)
	}
	return &response_models.TravelPlanResponse{
		ID:          plan.ID,
		UserID:      plan.UserID,
		Title:       plan.Title,
		Destination: plan.Destination,
		StartDate:   plan.StartDate,
		EndDate:     plan.EndDate,
		Budget:      plan.Budget,
		Travelers:   plan.Travelers,
		Preferences: plan.Preferences,
		Itinerary:   it,
		CreatedAt:   utils.FormatRFC3339CN(utils.FromUnixSecondsCN(plan.CreatedAt)),
		UpdatedAt:   utils.FormatRFC3339CN(utils.FromUnixSecondsCN(plan.UpdatedAt)),
	}, nil
}

func toListItem(p db_models.TravelPlan) response_models.TravelPlanListItem {
	item := response_models.TravelPlanListItem{
		ID:          p.ID,
		Title:       p.Title,
		Destination: p.Destination,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Budget:      p.Budget,
		Travelers:   p.Travelers,
		CreatedAt:   utils.FormatRFC3339CN(utils.FromUnixSecondsCN(p.CreatedAt)),
	}
	start, errStart := itinerary.ParseDate(p.StartDate)
	end, errEnd := itinerary.ParseDate(p.EndDate)
	if errStart == nil && errEnd == nil {
		item.DurationDays = itinerary.InclusiveDays(start, end)
	}
	return item
}

// serviceError keeps sentinel errors and hides everything else behind ErrDatabaseError.
func serviceError(err error) error {
	for _, sentinel := range []error{utils.ErrPlanNotFound, utils.ErrForbidden, utils.ErrInvalidInput} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
}

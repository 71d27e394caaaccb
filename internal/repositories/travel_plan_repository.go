package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"travelmate/internal/infra"
	"travelmate/internal/models/db_models"
)

type ITravelPlanRepository interface {
	Create(ctx context.Context, plan *db_models.TravelPlan) error
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.TravelPlan, error)
	ListByUser(ctx context.Context, userID string, page, pageSize int) ([]db_models.TravelPlan, int64, error)
	ListAllByUser(ctx context.Context, userID string) ([]db_models.TravelPlan, error)
	// UpdateWith loads the plan inside a transaction, lets mutate change it and
	// saves the result. A nil plan is passed to mutate when the id is unknown.
	UpdateWith(ctx context.Context, id uuid.UUID, mutate func(plan *db_models.TravelPlan) error) (*db_models.TravelPlan, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type TravelPlanRepository struct {
	db *gorm.DB
}

func NewTravelPlanRepository(db *gorm.DB) ITravelPlanRepository {
	return &TravelPlanRepository{db: db}
}

func (r *TravelPlanRepository) Create(ctx context.Context, plan *db_models.TravelPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *TravelPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.TravelPlan, error) {
	return findPlan(r.db.WithContext(ctx), id)
}

func findPlan(db *gorm.DB, id uuid.UUID) (*db_models.TravelPlan, error) {
	var plan db_models.TravelPlan
	err := db.First(&plan, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (r *TravelPlanRepository) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]db_models.TravelPlan, int64, error) {
	var (
		plans []db_models.TravelPlan
		total int64
	)

	query := r.db.WithContext(ctx).
		Model(&db_models.TravelPlan{}).
		Where("user_id = ?", userID).
		Session(&gorm.Session{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("created_at DESC").
		Order("id").
		Limit(pageSize).
		Offset(offset).
		Find(&plans).Error
	if err != nil {
		return nil, 0, err
	}
	return plans, total, nil
}

func (r *TravelPlanRepository) ListAllByUser(ctx context.Context, userID string) ([]db_models.TravelPlan, error) {
	var plans []db_models.TravelPlan
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *TravelPlanRepository) UpdateWith(ctx context.Context, id uuid.UUID, mutate func(plan *db_models.TravelPlan) error) (*db_models.TravelPlan, error) {
	tx := infra.StartTransaction(r.db.WithContext(ctx))
	if tx.Error != nil {
		return nil, tx.Error
	}

	plan, err := findPlan(tx, id)
	if err == nil {
		err = mutate(plan)
	}
	if err == nil && plan != nil {
		err = tx.Save(plan).Error
	}

	if err := infra.ReleaseTransaction(tx, err); err != nil {
		return nil, err
	}
	return plan, nil
}

func (r *TravelPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&db_models.TravelPlan{}, "id = ?", id).Error
}

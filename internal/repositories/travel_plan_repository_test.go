package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"travelmate/internal/config"
	"travelmate/internal/infra"
	"travelmate/internal/models/db_models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := infra.OpenDatabase(config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          "file::memory:",
		MaxOpenConns: 1,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { infra.CloseDatabase(db, zap.NewNop()) })
	return db
}

func newPlan(userID, destination string, createdAt int64) *db_models.TravelPlan {
	return &db_models.TravelPlan{
		BaseModel:   db_models.BaseModel{CreatedAt: createdAt},
		UserID:      userID,
		Title:       destination + " 3日游",
		Destination: destination,
		StartDate:   "2024-01-01",
		EndDate:     "2024-01-03",
		Budget:      3000,
		Travelers:   2,
		Itinerary:   datatypes.JSON(`{"destination":"` + destination + `"}`),
	}
}

func TestTravelPlanRepository_CreateAndGet(t *testing.T) {
	repo := NewTravelPlanRepository(newTestDB(t))
	ctx := context.Background()

	plan := newPlan("user-1", "北京", 100)
	require.NoError(t, repo.Create(ctx, plan))
	assert.NotEqual(t, uuid.Nil, plan.ID)

	got, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "北京", got.Destination)
	assert.Equal(t, int64(100), got.CreatedAt)
	assert.JSONEq(t, `{"destination":"北京"}`, string(got.Itinerary))

	missing, err := repo.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTravelPlanRepository_ListByUser(t *testing.T) {
	repo := NewTravelPlanRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newPlan("user-1", "北京", 100)))
	require.NoError(t, repo.Create(ctx, newPlan("user-1", "上海", 300)))
	require.NoError(t, repo.Create(ctx, newPlan("user-1", "杭州", 200)))
	require.NoError(t, repo.Create(ctx, newPlan("user-2", "成都", 400)))

	plans, total, err := repo.ListByUser(ctx, "user-1", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, plans, 2)
	assert.Equal(t, "上海", plans[0].Destination, "newest first")
	assert.Equal(t, "杭州", plans[1].Destination)

	plans, total, err = repo.ListByUser(ctx, "user-1", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, plans, 1)
	assert.Equal(t, "北京", plans[0].Destination)

	all, err := repo.ListAllByUser(ctx, "user-2")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "成都", all[0].Destination)
}

func TestTravelPlanRepository_UpdateWith(t *testing.T) {
	repo := NewTravelPlanRepository(newTestDB(t))
	ctx := context.Background()

	plan := newPlan("user-1", "北京", 100)
	require.NoError(t, repo.Create(ctx, plan))

	updated, err := repo.UpdateWith(ctx, plan.ID, func(p *db_models.TravelPlan) error {
		p.Title = "冬季北京"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "冬季北京", updated.Title)

	got, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "冬季北京", got.Title)
}

func TestTravelPlanRepository_UpdateWithRollsBack(t *testing.T) {
	repo := NewTravelPlanRepository(newTestDB(t))
	ctx := context.Background()
	errStop := errors.New("stop")

	plan := newPlan("user-1", "北京", 100)
	require.NoError(t, repo.Create(ctx, plan))

	_, err := repo.UpdateWith(ctx, plan.ID, func(p *db_models.TravelPlan) error {
		p.Title = "changed"
		return errStop
	})
	require.ErrorIs(t, err, errStop)

	got, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "北京 3日游", got.Title)

	var seen *db_models.TravelPlan
	_, err = repo.UpdateWith(ctx, uuid.New(), func(p *db_models.TravelPlan) error {
		seen = p
		return nil
	})
	require.NoError(t, err)
	assert.Nil(t, seen)
}

func TestTravelPlanRepository_Delete(t *testing.T) {
	repo := NewTravelPlanRepository(newTestDB(t))
	ctx := context.Background()

	plan := newPlan("user-1", "北京", 100)
	require.NoError(t, repo.Create(ctx, plan))
	require.NoError(t, repo.Delete(ctx, plan.ID))

	got, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, total, err := repo.ListByUser(ctx, "user-1", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

package travel_plan_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"travelmate/internal/repositories"
	"travelmate/internal/services"
)

var Module = fx.Provide(
	provideTravelPlanRepo, services.NewTravelPlanService, services.NewExportService)

func provideTravelPlanRepo(db *gorm.DB) repositories.ITravelPlanRepository {
	return repositories.NewTravelPlanRepository(db)
}

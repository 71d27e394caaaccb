package itinerary_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"travelmate/internal/config"
	"travelmate/internal/itinerary"
	"travelmate/internal/services"
	mem "travelmate/pkg/memcache"
	"travelmate/pkg/utils"
)

var Module = fx.Provide(
	provideTables, provideItineraryService)

func provideTables() itinerary.Tables {
	return itinerary.DefaultTables()
}

func provideItineraryService(
	generator utils.TextGenerator,
	tables itinerary.Tables,
	cache mem.ItineraryCache,
	cfg *config.Config,
	logger *zap.Logger,
) services.ItineraryServiceInterface {
	return services.NewItineraryService(generator, tables, cache, logger, cfg.Itinerary.MaxTripDays)
}

package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"travelmate/cmd/fx/config_fx"
	"travelmate/cmd/fx/controllers_fx"
	"travelmate/cmd/fx/db_fx"
	"travelmate/cmd/fx/itinerary_fx"
	"travelmate/cmd/fx/llm_fx"
	"travelmate/cmd/fx/logger_fx"
	"travelmate/cmd/fx/memcache_fx"
	"travelmate/cmd/fx/travel_plan_fx"
	"travelmate/internal/api/controllers"
	"travelmate/internal/config"
	"travelmate/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		logger_fx.Module,
		db_fx.Module,
		llm_fx.Module,
		memcache_fx.Module,
		itinerary_fx.Module,
		travel_plan_fx.Module,
		controllers_fx.Module,

		fx.Invoke(StartServer),
		fx.Provide(ProvideRouter),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, logger *zap.Logger) {
	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info("starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	logger *zap.Logger,
	itineraryController *controllers.ItineraryController,
	planController *controllers.TravelPlanController) *gin.Engine {

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.AccessLogMiddleware(logger))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))

	RegisterRoutes(r, cfg, itineraryController, planController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	cfg *config.Config,
	itineraryController *controllers.ItineraryController,
	planController *controllers.TravelPlanController) {

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	itineraryGroup := r.Group("/itineraries")
	itineraryGroup.POST("/generate", limiter.Limit(), itineraryController.GenerateHandler)
	itineraryGroup.POST("/from-text", limiter.Limit(), itineraryController.GenerateFromTextHandler)
	itineraryGroup.POST("/budget-analysis", itineraryController.BudgetAnalysisHandler)
	itineraryGroup.POST("/enrich", itineraryController.EnrichHandler)

	planGroup := r.Group("/plans", middleware.JWTAuthMiddleware(cfg.Auth.JWTSecret))
	planGroup.POST("", planController.CreatePlanHandler)
	planGroup.GET("", planController.ListPlansHandler)
	planGroup.GET("/summary", planController.SummaryHandler)
	planGroup.GET("/:id", planController.GetPlanHandler)
	planGroup.PUT("/:id", planController.UpdatePlanHandler)
	planGroup.DELETE("/:id", planController.DeletePlanHandler)
	planGroup.GET("/:id/ical", planController.ExportICalHandler)
	planGroup.GET("/:id/xlsx", planController.ExportSpreadsheetHandler)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"travelmate/internal/models/request_models"
	"travelmate/internal/models/response_models"
	"travelmate/internal/services"
	"travelmate/pkg/utils"
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
	logger           *zap.Logger
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface, logger *zap.Logger) *ItineraryController {
	return &ItineraryController{
		itineraryService: itineraryService,
		logger:           logger,
	}
}

// GenerateHandler godoc
// @Summary Generate a travel itinerary
// @Description Asks the configured model for an itinerary and falls back to a simulated one when it fails
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param request body request_models.TravelRequest true "Trip request"
// @Success 200 {object} response_models.GenerationResult
// @Router /itineraries/generate [post]
func (i *ItineraryController) GenerateHandler(c *gin.Context) {
	var req request_models.TravelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := i.itineraryService.Generate(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, i.logger, err)
		return
	}

	utils.RespondSuccess(c, result, generationMessage(result))
}

// POST /itineraries/from-text
func (i *ItineraryController) GenerateFromTextHandler(c *gin.Context) {
	var req request_models.TextPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "text is required")
		return
	}

	result, err := i.itineraryService.GenerateFromText(c.Request.Context(), req.Text)
	if err != nil {
		utils.HandleServiceError(c, i.logger, err)
		return
	}

	utils.RespondSuccess(c, result, generationMessage(result))
}

func (i *ItineraryController) BudgetAnalysisHandler(c *gin.Context) {
	var req request_models.BudgetAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	analysis, err := i.itineraryService.AnalyzeBudget(req.Itinerary, req.ActualExpenses)
	if err != nil {
		utils.HandleServiceError(c, i.logger, err)
		return
	}

	utils.RespondSuccess(c, analysis, "Budget analysed")
}

func (i *ItineraryController) EnrichHandler(c *gin.Context) {
	var req request_models.EnrichItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid itinerary format")
		return
	}

	utils.RespondSuccess(c, i.itineraryService.Enrich(req.Itinerary()), "Itinerary enriched")
}

func generationMessage(result response_models.GenerationResult) string {
	if result.Degraded() {
		return "Itinerary generated with degraded quality"
	}
	return "Itinerary generated successfully"
}

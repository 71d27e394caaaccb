package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"travelmate/internal/models/request_models"
	"travelmate/internal/services"
	"travelmate/pkg/middleware"
	"travelmate/pkg/utils"
)

type TravelPlanController struct {
	planService   services.TravelPlanServiceInterface
	exportService services.ExportServiceInterface
	logger        *zap.Logger
}

func NewTravelPlanController(
	planService services.TravelPlanServiceInterface,
	exportService services.ExportServiceInterface,
	logger *zap.Logger,
) *TravelPlanController {
	return &TravelPlanController{
		planService:   planService,
		exportService: exportService,
		logger:        logger,
	}
}

// CreatePlanHandler godoc
// @Summary Save an itinerary as a travel plan
// @Tags Plans
// @Accept json
// @Produce json
// @Param request body request_models.CreateTravelPlanRequest true "Plan"
// @Success 201 {object} response_models.TravelPlanResponse
// @Security BearerAuth
// @Router /plans [post]
func (p *TravelPlanController) CreatePlanHandler(c *gin.Context) {
	var req request_models.CreateTravelPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	plan, err := p.planService.CreatePlan(c.Request.Context(), c.GetString(middleware.UserIDKey), req)
	if err != nil {
		utils.HandleServiceError(c, p.logger, err)
		return
	}

	utils.RespondCreated(c, plan, "Travel plan saved")
}

// ListPlansHandler godoc
// @Summary List the caller's travel plans, newest first
// @Tags Plans
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10) minimum(1) maximum(100)
// @Success 200 {object} response_models.TravelPlanPage
// @Security BearerAuth
// @Router /plans [get]
func (p *TravelPlanController) ListPlansHandler(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	plans, err := p.planService.ListPlans(c.Request.Context(), c.GetString(middleware.UserIDKey), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, p.logger, err)
		return
	}

	utils.RespondSuccess(c, plans, "Travel plans fetched successfully")
}

func (p *TravelPlanController) GetPlanHandler(c *gin.Context) {
	plan, err := p.planService.GetPlan(c.Request.Context(), c.GetString(middleware.UserIDKey), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, p.logger, err)
		return
	}

	utils.RespondSuccess(c, plan, "Travel plan fetched successfully")
}

func (p *TravelPlanController) UpdatePlanHandler(c *gin.Context) {
	var req request_models.UpdateTravelPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	plan, err := p.planService.UpdatePlan(c.Request.Context(), c.GetString(middleware.UserIDKey), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, p.logger, err)
		return
	}

	utils.RespondSuccess(c, plan, "Travel plan updated")
}

func (p *TravelPlanController) DeletePlanHandler(c *gin.Context) {
	if err := p.planService.DeletePlan(c.Request.Context(), c.GetString(middleware.UserIDKey), c.Param("id")); err != nil {
		utils.HandleServiceError(c, p.logger, err)
		return
	}

	utils.RespondSuccess(c, nil, "Travel plan deleted")
}

// GET /plans/summary
func (p *TravelPlanController) SummaryHandler(c *gin.Context) {
	summary, err := p.planService.Summary(c.Request.Context(), c.GetString(middleware.UserIDKey))
	if err != nil {
		utils.HandleServiceError(c, p.logger, err)
		return
	}

	utils.RespondSuccess(c, summary, "Summary fetched successfully")
}

func (p *TravelPlanController) ExportICalHandler(c *gin.Context) {
	file, err := p.exportService.ExportICal(c.Request.Context(), c.GetString(middleware.UserIDKey), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, p.logger, err)
		return
	}
	sendFile(c, file)
}

func (p *TravelPlanController) ExportSpreadsheetHandler(c *gin.Context) {
	file, err := p.exportService.ExportSpreadsheet(c.Request.Context(), c.GetString(middleware.UserIDKey), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, p.logger, err)
		return
	}
	sendFile(c, file)
}

func sendFile(c *gin.Context, file *services.ExportFile) {
	c.Header("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

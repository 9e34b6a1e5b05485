package v1

import (
	"net/http"
	"strconv"
	"time"

	"talentbridge-backend/internal/delivery/http/response"
	"talentbridge-backend/internal/domain"
	"talentbridge-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ScreeningHandler struct {
	screeningUC domain.ScreeningUsecase
}

func NewScreeningHandler(protected *gin.RouterGroup, screeningUC domain.ScreeningUsecase) {
	handler := &ScreeningHandler{screeningUC: screeningUC}

	screenings := protected.Group("/screenings")
	{
		screenings.GET("", handler.List)
		screenings.POST("", handler.Create)
		screenings.GET("/stats", handler.Stats)
		screenings.GET("/:id", handler.GetDetails)
		screenings.PUT("/:id", handler.Update)
		screenings.POST("/:id/start", handler.Start)
		screenings.POST("/:id/complete", handler.Complete)
		screenings.POST("/:id/cancel", handler.Cancel)
	}
}

type CreateScreeningRequest struct {
	ApplicationID int64   `json:"application_id" binding:"required"`
	ScheduledAt   *string `json:"scheduled_at" binding:"omitempty,rfc3339"`
}

type UpdateScreeningRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

// Create godoc
// @Summary      Schedule a screening
// @Description  Schedule a screening interview for an application. Each application can have at most one active screening.
// @Tags         screenings
// @Accept       json
// @Produce      json
// @Param        screening  body      CreateScreeningRequest  true  "Screening JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /screenings [post]
// @Security     BearerAuth
func (h *ScreeningHandler) Create(c *gin.Context) {
	var req CreateScreeningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	var scheduledAt *time.Time
	if req.ScheduledAt != nil && *req.ScheduledAt != "" {
		t, err := time.Parse(time.RFC3339, *req.ScheduledAt)
		if err != nil {
			c.Error(apperror.BadRequest("scheduled_at must be an RFC3339 timestamp"))
			return
		}
		scheduledAt = &t
	}

	screening, err := h.screeningUC.CreateScreening(c.Request.Context(), req.ApplicationID, scheduledAt)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Screening scheduled", screening)
}

// List godoc
// @Summary      List screenings
// @Tags         screenings
// @Produce      json
// @Param        status          query  string  false  "Filter by status"
// @Param        application_id  query  int     false  "Filter by application"
// @Param        skip            query  int     false  "Offset"
// @Param        limit           query  int     false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /screenings [get]
// @Security     BearerAuth
func (h *ScreeningHandler) List(c *gin.Context) {
	skip, limit := paginationParams(c)
	filter := domain.ScreeningFilter{
		Status: c.Query("status"),
		Skip:   skip,
		Limit:  limit,
	}
	if appID, err := strconv.ParseInt(c.Query("application_id"), 10, 64); err == nil {
		filter.ApplicationID = appID
	}

	screenings, err := h.screeningUC.ListScreenings(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Screenings retrieved", screenings)
}

// GetDetails godoc
// @Summary      Get screening details
// @Tags         screenings
// @Produce      json
// @Param        id  path  int  true  "Screening ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /screenings/{id} [get]
// @Security     BearerAuth
func (h *ScreeningHandler) GetDetails(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		c.Error(err)
		return
	}

	screening, err := h.screeningUC.GetScreening(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Screening retrieved", screening)
}

// Update godoc
// @Summary      Update a screening
// @Description  Update notes or move between scheduled and cancelled. Running state changes use the start, complete and cancel actions.
// @Tags         screenings
// @Accept       json
// @Produce      json
// @Param        id         path  int                     true  "Screening ID"
// @Param        screening  body  UpdateScreeningRequest  true  "Fields to update"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /screenings/{id} [put]
// @Security     BearerAuth
func (h *ScreeningHandler) Update(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req UpdateScreeningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	screening, err := h.screeningUC.UpdateScreening(c.Request.Context(), id, domain.ScreeningUpdate{
		Status: req.Status,
		Notes:  req.Notes,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Screening updated", screening)
}

// Start godoc
// @Summary      Start a screening
// @Tags         screenings
// @Produce      json
// @Param        id  path  int  true  "Screening ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /screenings/{id}/start [post]
// @Security     BearerAuth
func (h *ScreeningHandler) Start(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		c.Error(err)
		return
	}

	screening, err := h.screeningUC.StartScreening(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Screening started", screening)
}

// Complete godoc
// @Summary      Complete a screening
// @Description  Finalize a scheduled or in-progress screening with a generated assessment and advance or reject the application
// @Tags         screenings
// @Produce      json
// @Param        id  path  int  true  "Screening ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /screenings/{id}/complete [post]
// @Security     BearerAuth
func (h *ScreeningHandler) Complete(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		c.Error(err)
		return
	}

	screening, err := h.screeningUC.CompleteScreening(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Screening completed", screening)
}

// Cancel godoc
// @Summary      Cancel a screening
// @Description  Cancel a scheduled or in-progress screening and return the application to pending
// @Tags         screenings
// @Produce      json
// @Param        id  path  int  true  "Screening ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /screenings/{id}/cancel [post]
// @Security     BearerAuth
func (h *ScreeningHandler) Cancel(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		c.Error(err)
		return
	}

	screening, err := h.screeningUC.CancelScreening(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Screening cancelled", screening)
}

// Stats godoc
// @Summary      Screening statistics
// @Tags         screenings
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /screenings/stats [get]
// @Security     BearerAuth
func (h *ScreeningHandler) Stats(c *gin.Context) {
	stats, err := h.screeningUC.GetScreeningStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Screening stats retrieved", stats)
}

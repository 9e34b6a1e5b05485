package v1

import (
	"net/http"
	"strconv"

	"talentbridge-backend/internal/delivery/http/response"
	"talentbridge-backend/internal/domain"
	"talentbridge-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

func NewApplicationHandler(protected *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	apps := protected.Group("/applications")
	{
		apps.GET("", handler.List)
		apps.POST("", handler.Create)
		apps.GET("/stats", handler.Stats)
		apps.POST("/bulk-invite-screening", handler.BulkInviteScreening)
		apps.GET("/:id", handler.GetDetails)
		apps.PUT("/:id", handler.Update)
		apps.DELETE("/:id", handler.Delete)
		apps.POST("/:id/shortlist", handler.Shortlist)
		apps.POST("/:id/reject", handler.Reject)
	}
}

type CreateApplicationRequest struct {
	JobID       int64  `json:"job_id" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	FullName    string `json:"full_name" binding:"required"`
	Phone       string `json:"phone"`
	CoverLetter string `json:"cover_letter"`
	LinkedinURL string `json:"linkedin_url"`
}

type UpdateApplicationRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

type BulkInviteRequest struct {
	ApplicationIDs []int64 `json:"application_ids" binding:"required"`
}

// Create godoc
// @Summary      Create an application
// @Description  Record an application for a candidate, creating the candidate by email if needed
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        application  body      CreateApplicationRequest  true  "Application JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Create(c *gin.Context) {
	var req CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	app, err := h.applicationUC.CreateApplication(c.Request.Context(), domain.ApplicationCreate{
		JobID:       req.JobID,
		Email:       req.Email,
		FullName:    req.FullName,
		Phone:       req.Phone,
		CoverLetter: req.CoverLetter,
		LinkedinURL: req.LinkedinURL,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application created", app)
}

// List godoc
// @Summary      List applications
// @Description  List applications ordered by match score, best first
// @Tags         applications
// @Produce      json
// @Param        job_id     query  int     false  "Filter by job"
// @Param        status     query  string  false  "Filter by status"
// @Param        search     query  string  false  "Search candidate name or email"
// @Param        min_score  query  number  false  "Minimum match score"
// @Param        skip       query  int     false  "Offset"
// @Param        limit      query  int     false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) List(c *gin.Context) {
	skip, limit := paginationParams(c)
	filter := domain.ApplicationFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Skip:   skip,
		Limit:  limit,
	}
	if jobID, err := strconv.ParseInt(c.Query("job_id"), 10, 64); err == nil {
		filter.JobID = jobID
	}
	if minScore, err := strconv.ParseFloat(c.Query("min_score"), 64); err == nil {
		filter.MinScore = &minScore
	}

	apps, err := h.applicationUC.ListApplications(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", apps)
}

// GetDetails godoc
// @Summary      Get application details
// @Description  Application with its candidate, job and screening history
// @Tags         applications
// @Produce      json
// @Param        id  path  int  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetDetails(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		c.Error(err)
		return
	}

	app, err := h.applicationUC.GetApplication(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application retrieved", app)
}

// Update godoc
// @Summary      Update an application
// @Description  Update status or recruiter notes
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id           path  int                       true  "Application ID"
// @Param        application  body  UpdateApplicationRequest  true  "Fields to update"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [put]
// @Security     BearerAuth
func (h *ApplicationHandler) Update(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	app, err := h.applicationUC.UpdateApplication(c.Request.Context(), id, domain.ApplicationUpdate{
		Status: req.Status,
		Notes:  req.Notes,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application updated", app)
}

// Delete godoc
// @Summary      Delete an application
// @Tags         applications
// @Produce      json
// @Param        id  path  int  true  "Application ID"
// @Success      204  "No Content"
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [delete]
// @Security     BearerAuth
func (h *ApplicationHandler) Delete(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.applicationUC.DeleteApplication(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Shortlist godoc
// @Summary      Shortlist an application
// @Tags         applications
// @Produce      json
// @Param        id  path  int  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id}/shortlist [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Shortlist(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		c.Error(err)
		return
	}

	app, err := h.applicationUC.Shortlist(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application shortlisted", app)
}

// Reject godoc
// @Summary      Reject an application
// @Tags         applications
// @Produce      json
// @Param        id  path  int  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id}/reject [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Reject(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		c.Error(err)
		return
	}

	app, err := h.applicationUC.Reject(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application rejected", app)
}

// BulkInviteScreening godoc
// @Summary      Bulk invite to screening
// @Description  Schedule screenings for many applications at once. Applications with an active screening are skipped.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        ids  body      BulkInviteRequest  true  "Application IDs"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /applications/bulk-invite-screening [post]
// @Security     BearerAuth
func (h *ApplicationHandler) BulkInviteScreening(c *gin.Context) {
	var req BulkInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	result, err := h.applicationUC.BulkInviteScreening(c.Request.Context(), req.ApplicationIDs)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Bulk invite completed", result)
}

// Stats godoc
// @Summary      Application statistics
// @Tags         applications
// @Produce      json
// @Param        job_id  query  int  false  "Limit stats to one job"
// @Success      200  {object}  response.Response
// @Router       /applications/stats [get]
// @Security     BearerAuth
func (h *ApplicationHandler) Stats(c *gin.Context) {
	var jobID int64
	if v, err := strconv.ParseInt(c.Query("job_id"), 10, 64); err == nil {
		jobID = v
	}

	stats, err := h.applicationUC.GetApplicationStats(c.Request.Context(), jobID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application stats retrieved", stats)
}

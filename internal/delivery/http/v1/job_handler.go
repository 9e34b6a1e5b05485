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

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	jobs := protected.Group("/jobs")
	{
		jobs.GET("", handler.List)
		jobs.POST("", handler.Create)
		jobs.GET("/stats", handler.Stats)
		jobs.GET("/:id", handler.GetDetails)
		jobs.PUT("/:id", handler.Update)
		jobs.DELETE("/:id", handler.Delete)
		jobs.GET("/:id/pipeline", handler.Pipeline)
		jobs.POST("/:id/publish", handler.Publish)
		jobs.POST("/:id/pause", handler.Pause)
		jobs.POST("/:id/reopen", handler.Reopen)
		jobs.POST("/:id/close", handler.Close)
	}
}

type JobRequest struct {
	Title            string   `json:"title" binding:"required"`
	Department       string   `json:"department"`
	Location         string   `json:"location"`
	JobType          string   `json:"job_type" binding:"omitempty,oneof=full_time part_time contract internship"`
	ExperienceLevel  string   `json:"experience_level"`
	SalaryMin        *int64   `json:"salary_min"`
	SalaryMax        *int64   `json:"salary_max"`
	Description      string   `json:"description" binding:"required"`
	Requirements     string   `json:"requirements"`
	Responsibilities string   `json:"responsibilities"`
	SkillsRequired   []string `json:"skills_required"`
	Benefits         string   `json:"benefits"`
	Deadline         *string  `json:"deadline" binding:"omitempty,rfc3339"`
}

func toPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (req *JobRequest) toDomain() (*domain.Job, error) {
	job := &domain.Job{
		Title:            req.Title,
		Department:       toPtr(req.Department),
		Location:         toPtr(req.Location),
		JobType:          req.JobType,
		ExperienceLevel:  toPtr(req.ExperienceLevel),
		SalaryMin:        req.SalaryMin,
		SalaryMax:        req.SalaryMax,
		Description:      req.Description,
		Requirements:     toPtr(req.Requirements),
		Responsibilities: toPtr(req.Responsibilities),
		SkillsRequired:   req.SkillsRequired,
		Benefits:         toPtr(req.Benefits),
	}
	if job.JobType == "" {
		job.JobType = "full_time"
	}
	if req.Deadline != nil && *req.Deadline != "" {
		deadline, err := time.Parse(time.RFC3339, *req.Deadline)
		if err != nil {
			return nil, apperror.BadRequest("deadline must be an RFC3339 timestamp")
		}
		job.Deadline = &deadline
	}
	return job, nil
}

func paramID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, apperror.BadRequest("Invalid id parameter")
	}
	return id, nil
}

func paginationParams(c *gin.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	return skip, limit
}

// Create godoc
// @Summary      Create a job
// @Description  Create a new job posting in draft status
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      JobRequest  true  "Job JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	job, err := req.toDomain()
	if err != nil {
		c.Error(err)
		return
	}

	userID := c.GetInt64(string(domain.KeyUserID))
	if err := h.jobUC.CreateJob(c.Request.Context(), userID, job); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created", job)
}

// List godoc
// @Summary      List jobs
// @Description  List jobs with optional status and search filters
// @Tags         jobs
// @Produce      json
// @Param        status  query  string  false  "Filter by status"
// @Param        search  query  string  false  "Search in title, description, department"
// @Param        skip    query  int     false  "Offset"
// @Param        limit   query  int     false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /jobs [get]
// @Security     BearerAuth
func (h *JobHandler) List(c *gin.Context) {
	skip, limit := paginationParams(c)
	jobs, err := h.jobUC.ListJobs(c.Request.Context(), domain.JobFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Skip:   skip,
		Limit:  limit,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Jobs retrieved", jobs)
}

// GetDetails godoc
// @Summary      Get job details
// @Tags         jobs
// @Produce      json
// @Param        id  path  int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
// @Security     BearerAuth
func (h *JobHandler) GetDetails(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		c.Error(err)
		return
	}

	job, err := h.jobUC.GetJobDetails(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job retrieved", job)
}

// Update godoc
// @Summary      Update a job
// @Description  Update job fields. Status changes go through the lifecycle actions.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path  int         true  "Job ID"
// @Param        job  body  JobRequest  true  "Job JSON"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	job, err := req.toDomain()
	if err != nil {
		c.Error(err)
		return
	}
	job.ID = id

	updated, err := h.jobUC.UpdateJob(c.Request.Context(), job)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job updated", updated)
}

// Delete godoc
// @Summary      Delete a job
// @Description  Delete a job that has no applications
// @Tags         jobs
// @Produce      json
// @Param        id  path  int  true  "Job ID"
// @Success      204  "No Content"
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.jobUC.DeleteJob(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Pipeline godoc
// @Summary      Job pipeline summary
// @Description  Per-status application counts and average match score for a job
// @Tags         jobs
// @Produce      json
// @Param        id  path  int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/pipeline [get]
// @Security     BearerAuth
func (h *JobHandler) Pipeline(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		c.Error(err)
		return
	}

	summary, err := h.jobUC.GetPipelineSummary(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Pipeline retrieved", summary)
}

func (h *JobHandler) lifecycle(c *gin.Context, action func(int64) (*domain.Job, error), message string) {
	id, err := paramID(c)
	if err != nil {
		c.Error(err)
		return
	}

	job, err := action(id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, message, job)
}

// Publish godoc
// @Summary      Publish a draft job
// @Tags         jobs
// @Produce      json
// @Param        id  path  int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /jobs/{id}/publish [post]
// @Security     BearerAuth
func (h *JobHandler) Publish(c *gin.Context) {
	h.lifecycle(c, func(id int64) (*domain.Job, error) {
		return h.jobUC.PublishJob(c.Request.Context(), id)
	}, "Job published")
}

// Pause godoc
// @Summary      Pause an active job
// @Tags         jobs
// @Produce      json
// @Param        id  path  int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /jobs/{id}/pause [post]
// @Security     BearerAuth
func (h *JobHandler) Pause(c *gin.Context) {
	h.lifecycle(c, func(id int64) (*domain.Job, error) {
		return h.jobUC.PauseJob(c.Request.Context(), id)
	}, "Job paused")
}

// Reopen godoc
// @Summary      Reopen a paused job
// @Tags         jobs
// @Produce      json
// @Param        id  path  int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /jobs/{id}/reopen [post]
// @Security     BearerAuth
func (h *JobHandler) Reopen(c *gin.Context) {
	h.lifecycle(c, func(id int64) (*domain.Job, error) {
		return h.jobUC.ReopenJob(c.Request.Context(), id)
	}, "Job reopened")
}

// Close godoc
// @Summary      Close a job
// @Tags         jobs
// @Produce      json
// @Param        id  path  int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /jobs/{id}/close [post]
// @Security     BearerAuth
func (h *JobHandler) Close(c *gin.Context) {
	h.lifecycle(c, func(id int64) (*domain.Job, error) {
		return h.jobUC.CloseJob(c.Request.Context(), id)
	}, "Job closed")
}

// Stats godoc
// @Summary      Job statistics
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /jobs/stats [get]
// @Security     BearerAuth
func (h *JobHandler) Stats(c *gin.Context) {
	stats, err := h.jobUC.GetJobStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job stats retrieved", stats)
}

package v1

import (
	"io"
	"net/http"
	"net/mail"
	"strconv"

	"talentbridge-backend/internal/delivery/http/middleware"
	"talentbridge-backend/internal/delivery/http/response"
	"talentbridge-backend/internal/domain"
	"talentbridge-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type PublicHandler struct {
	publicUC domain.PublicUsecase
}

func NewPublicHandler(public *gin.RouterGroup, publicUC domain.PublicUsecase) {
	handler := &PublicHandler{publicUC: publicUC}

	jobBoard := public.Group("/public")
	{
		jobBoard.GET("/jobs", handler.ListJobs)
		jobBoard.GET("/jobs/:id", handler.GetJob)
		jobBoard.POST("/apply", middleware.RateLimitMiddleware(middleware.PublicApplyRateLimitConfig()), handler.Apply)
		jobBoard.GET("/status", handler.ApplicationStatus)
	}
}

// ListJobs godoc
// @Summary      Public job board
// @Description  List active jobs for applicants. Draft, paused and closed jobs are never shown.
// @Tags         public
// @Produce      json
// @Param        search    query  string  false  "Search title, description, location"
// @Param        job_type  query  string  false  "Filter by job type"
// @Param        skip      query  int     false  "Offset"
// @Param        limit     query  int     false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /public/jobs [get]
func (h *PublicHandler) ListJobs(c *gin.Context) {
	skip, limit := paginationParams(c)
	jobs, err := h.publicUC.ListJobs(c.Request.Context(), c.Query("search"), c.Query("job_type"), skip, limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Jobs retrieved", jobs)
}

// GetJob godoc
// @Summary      Public job details
// @Tags         public
// @Produce      json
// @Param        id  path  int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /public/jobs/{id} [get]
func (h *PublicHandler) GetJob(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		c.Error(err)
		return
	}

	job, err := h.publicUC.GetJob(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job retrieved", job)
}

// Apply godoc
// @Summary      Apply to a job
// @Description  Submit a public application with an optional resume. The resume is analyzed in memory for match scoring.
// @Tags         public
// @Accept       multipart/form-data
// @Produce      json
// @Param        job_id        formData  int     true   "Job ID"
// @Param        full_name     formData  string  true   "Applicant name"
// @Param        email         formData  string  true   "Applicant email"
// @Param        phone         formData  string  false  "Phone number"
// @Param        cover_letter  formData  string  false  "Cover letter"
// @Param        resume        formData  file    false  "Resume file (PDF or Word)"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /public/apply [post]
func (h *PublicHandler) Apply(c *gin.Context) {
	jobID, err := strconv.ParseInt(c.PostForm("job_id"), 10, 64)
	if err != nil || jobID < 1 {
		c.Error(apperror.BadRequest("job_id is required"))
		return
	}

	fullName := c.PostForm("full_name")
	emailAddr := c.PostForm("email")
	if fullName == "" || emailAddr == "" {
		c.Error(apperror.BadRequest("full_name and email are required"))
		return
	}
	if _, err := mail.ParseAddress(emailAddr); err != nil {
		c.Error(apperror.BadRequest("email is not a valid address"))
		return
	}

	input := domain.PublicApplyInput{
		JobID:       jobID,
		FullName:    fullName,
		Email:       emailAddr,
		Phone:       c.PostForm("phone"),
		CoverLetter: c.PostForm("cover_letter"),
	}

	if fileHeader, err := c.FormFile("resume"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			c.Error(apperror.Internal(err))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			c.Error(apperror.Internal(err))
			return
		}
		input.ResumeName = fileHeader.Filename
		input.ResumeType = fileHeader.Header.Get("Content-Type")
		input.ResumeData = data
	}

	result, err := h.publicUC.Apply(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted", result)
}

// ApplicationStatus godoc
// @Summary      Check application status
// @Description  List the statuses of all applications submitted with an email address
// @Tags         public
// @Produce      json
// @Param        email  query  string  true  "Applicant email"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /public/status [get]
func (h *PublicHandler) ApplicationStatus(c *gin.Context) {
	emailAddr := c.Query("email")
	if emailAddr == "" {
		c.Error(apperror.BadRequest("email query parameter is required"))
		return
	}

	statuses, err := h.publicUC.StatusByEmail(c.Request.Context(), emailAddr)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application statuses retrieved", statuses)
}

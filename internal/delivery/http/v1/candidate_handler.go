package v1

import (
	"io"
	"net/http"
	"time"

	"talentbridge-backend/internal/delivery/http/response"
	"talentbridge-backend/internal/domain"
	"talentbridge-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
}

func NewCandidateHandler(protected *gin.RouterGroup, candidateUC domain.CandidateUsecase) {
	handler := &CandidateHandler{candidateUC: candidateUC}

	candidates := protected.Group("/candidates")
	{
		candidates.GET("", handler.List)
		candidates.POST("", handler.Create)
		candidates.GET("/stats", handler.Stats)
		candidates.GET("/export", handler.Export)
		candidates.GET("/:id", handler.GetDetails)
		candidates.PUT("/:id", handler.Update)
		candidates.DELETE("/:id", handler.Delete)
		candidates.POST("/:id/resume", handler.UploadResume)
		candidates.GET("/:id/applications", handler.Applications)
	}
}

type CandidateRequest struct {
	Email           string   `json:"email" binding:"required,email"`
	FullName        string   `json:"full_name" binding:"required"`
	Phone           string   `json:"phone"`
	Location        string   `json:"location"`
	LinkedinURL     string   `json:"linkedin_url"`
	PortfolioURL    string   `json:"portfolio_url"`
	Skills          string   `json:"skills"`
	ExperienceYears *float64 `json:"experience_years"`
	Education       string   `json:"education"`
	Summary         string   `json:"summary"`
}

func (req *CandidateRequest) toDomain() *domain.Candidate {
	return &domain.Candidate{
		Email:           req.Email,
		FullName:        req.FullName,
		Phone:           toPtr(req.Phone),
		Location:        toPtr(req.Location),
		LinkedinURL:     toPtr(req.LinkedinURL),
		PortfolioURL:    toPtr(req.PortfolioURL),
		Skills:          toPtr(req.Skills),
		ExperienceYears: req.ExperienceYears,
		Education:       toPtr(req.Education),
		Summary:         toPtr(req.Summary),
	}
}

// Create godoc
// @Summary      Create a candidate
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        candidate  body      CandidateRequest  true  "Candidate JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /candidates [post]
// @Security     BearerAuth
func (h *CandidateHandler) Create(c *gin.Context) {
	var req CandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	candidate := req.toDomain()
	if err := h.candidateUC.CreateCandidate(c.Request.Context(), candidate); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Candidate created", candidate)
}

// List godoc
// @Summary      List candidates
// @Tags         candidates
// @Produce      json
// @Param        search  query  string  false  "Search in name, email, skills"
// @Param        skills  query  string  false  "Filter by skill substring"
// @Param        skip    query  int     false  "Offset"
// @Param        limit   query  int     false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /candidates [get]
// @Security     BearerAuth
func (h *CandidateHandler) List(c *gin.Context) {
	skip, limit := paginationParams(c)
	candidates, err := h.candidateUC.ListCandidates(c.Request.Context(), domain.CandidateFilter{
		Search: c.Query("search"),
		Skills: c.Query("skills"),
		Skip:   skip,
		Limit:  limit,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidates retrieved", candidates)
}

// GetDetails godoc
// @Summary      Get candidate details
// @Tags         candidates
// @Produce      json
// @Param        id  path  int  true  "Candidate ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id} [get]
// @Security     BearerAuth
func (h *CandidateHandler) GetDetails(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		c.Error(err)
		return
	}

	candidate, err := h.candidateUC.GetCandidate(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate retrieved", candidate)
}

// Update godoc
// @Summary      Update a candidate
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id         path  int               true  "Candidate ID"
// @Param        candidate  body  CandidateRequest  true  "Candidate JSON"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id} [put]
// @Security     BearerAuth
func (h *CandidateHandler) Update(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req CandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	candidate := req.toDomain()
	candidate.ID = id

	updated, err := h.candidateUC.UpdateCandidate(c.Request.Context(), candidate)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate updated", updated)
}

// Delete godoc
// @Summary      Delete a candidate
// @Tags         candidates
// @Produce      json
// @Param        id  path  int  true  "Candidate ID"
// @Success      204  "No Content"
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id} [delete]
// @Security     BearerAuth
func (h *CandidateHandler) Delete(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.candidateUC.DeleteCandidate(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadResume godoc
// @Summary      Upload candidate resume
// @Description  Store a resume file and extract its text for match scoring
// @Tags         candidates
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      int   true  "Candidate ID"
// @Param        file  formData  file  true  "Resume file (PDF or Word)"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /candidates/{id}/resume [post]
// @Security     BearerAuth
func (h *CandidateHandler) UploadResume(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		c.Error(err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.BadRequest("Resume file is required"))
		return
	}

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

	candidate, err := h.candidateUC.UploadResume(c.Request.Context(), id, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resume uploaded", candidate)
}

// Applications godoc
// @Summary      Candidate applications
// @Tags         candidates
// @Produce      json
// @Param        id  path  int  true  "Candidate ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id}/applications [get]
// @Security     BearerAuth
func (h *CandidateHandler) Applications(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		c.Error(err)
		return
	}

	apps, err := h.candidateUC.ListApplications(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", apps)
}

// Stats godoc
// @Summary      Candidate statistics
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /candidates/stats [get]
// @Security     BearerAuth
func (h *CandidateHandler) Stats(c *gin.Context) {
	stats, err := h.candidateUC.GetCandidateStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate stats retrieved", stats)
}

// Export godoc
// @Summary      Export candidates
// @Description  Download all candidates as a spreadsheet (xlsx or csv)
// @Tags         candidates
// @Produce      application/octet-stream
// @Param        format  query  string  false  "xlsx or csv"  default(xlsx)
// @Success      200  {file}  binary
// @Failure      400  {object}  response.Response
// @Router       /candidates/export [get]
// @Security     BearerAuth
func (h *CandidateHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "xlsx")

	data, contentType, err := h.candidateUC.Export(c.Request.Context(), format)
	if err != nil {
		c.Error(err)
		return
	}

	ext := "xlsx"
	if format == "csv" {
		ext = "csv"
	}
	filename := "candidates_" + time.Now().Format("20060102") + "." + ext
	response.File(c, contentType, filename, data)
}

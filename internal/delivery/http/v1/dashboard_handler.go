package v1

import (
	"net/http"
	"strconv"

	"talentbridge-backend/internal/delivery/http/response"
	"talentbridge-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardUC domain.DashboardUsecase
}

func NewDashboardHandler(protected *gin.RouterGroup, dashboardUC domain.DashboardUsecase) {
	handler := &DashboardHandler{dashboardUC: dashboardUC}

	dashboard := protected.Group("/dashboard")
	{
		dashboard.GET("/stats", handler.Stats)
		dashboard.GET("/recent-activity", handler.RecentActivity)
		dashboard.GET("/pipeline-overview", handler.PipelineOverview)
		dashboard.GET("/top-jobs", handler.TopJobs)
		dashboard.GET("/recent-applications", handler.RecentApplications)
		dashboard.GET("/screening-performance", handler.ScreeningPerformance)
		dashboard.GET("/hiring-funnel", handler.HiringFunnel)
	}
}

// Stats godoc
// @Summary      Dashboard headline stats
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /dashboard/stats [get]
// @Security     BearerAuth
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardUC.GetStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Dashboard stats retrieved", stats)
}

// RecentActivity godoc
// @Summary      Recent activity feed
// @Tags         dashboard
// @Produce      json
// @Param        limit  query  int  false  "Max entries"  default(20)
// @Success      200  {object}  response.Response
// @Router       /dashboard/recent-activity [get]
// @Security     BearerAuth
func (h *DashboardHandler) RecentActivity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	entries, err := h.dashboardUC.GetRecentActivity(c.Request.Context(), limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Recent activity retrieved", entries)
}

// PipelineOverview godoc
// @Summary      Pipeline overview
// @Description  Application counts per status across all jobs
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /dashboard/pipeline-overview [get]
// @Security     BearerAuth
func (h *DashboardHandler) PipelineOverview(c *gin.Context) {
	overview, err := h.dashboardUC.GetPipelineOverview(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Pipeline overview retrieved", overview)
}

// TopJobs godoc
// @Summary      Most applied-to active jobs
// @Tags         dashboard
// @Produce      json
// @Param        limit  query  int  false  "Max jobs"  default(5)
// @Success      200  {object}  response.Response
// @Router       /dashboard/top-jobs [get]
// @Security     BearerAuth
func (h *DashboardHandler) TopJobs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	jobs, err := h.dashboardUC.GetTopJobs(c.Request.Context(), limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Top jobs retrieved", jobs)
}

// RecentApplications godoc
// @Summary      Latest applications
// @Tags         dashboard
// @Produce      json
// @Param        limit  query  int  false  "Max applications"  default(10)
// @Success      200  {object}  response.Response
// @Router       /dashboard/recent-applications [get]
// @Security     BearerAuth
func (h *DashboardHandler) RecentApplications(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	apps, err := h.dashboardUC.GetRecentApplications(c.Request.Context(), limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Recent applications retrieved", apps)
}

// ScreeningPerformance godoc
// @Summary      Screening performance
// @Description  Averages and recommendation distribution for completed screenings in the period
// @Tags         dashboard
// @Produce      json
// @Param        days  query  int  false  "Period in days"  default(30)
// @Success      200  {object}  response.Response
// @Router       /dashboard/screening-performance [get]
// @Security     BearerAuth
func (h *DashboardHandler) ScreeningPerformance(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	perf, err := h.dashboardUC.GetScreeningPerformance(c.Request.Context(), days)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Screening performance retrieved", perf)
}

// HiringFunnel godoc
// @Summary      Hiring funnel
// @Description  Cumulative pipeline stages with conversion rates, optionally scoped to one job
// @Tags         dashboard
// @Produce      json
// @Param        job_id  query  int  false  "Limit to one job"
// @Success      200  {object}  response.Response
// @Router       /dashboard/hiring-funnel [get]
// @Security     BearerAuth
func (h *DashboardHandler) HiringFunnel(c *gin.Context) {
	var jobID int64
	if v, err := strconv.ParseInt(c.Query("job_id"), 10, 64); err == nil {
		jobID = v
	}

	funnel, err := h.dashboardUC.GetHiringFunnel(c.Request.Context(), jobID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Hiring funnel retrieved", funnel)
}

package domain

import (
	"context"
	"time"
)

type DashboardStats struct {
	TotalJobs           int64    `json:"total_jobs"`
	ActiveJobs          int64    `json:"active_jobs"`
	TotalCandidates     int64    `json:"total_candidates"`
	TotalApplications   int64    `json:"total_applications"`
	PendingApplications int64    `json:"pending_applications"`
	ScreeningsCompleted int64    `json:"screenings_completed"`
	HiredCount          int64    `json:"hired_count"`
	AvgTimeToHire       *float64 `json:"avg_time_to_hire"`
}

type TopJob struct {
	ID                int64   `json:"id"`
	Title             string  `json:"title"`
	Department        *string `json:"department,omitempty"`
	Location          *string `json:"location,omitempty"`
	Status            string  `json:"status"`
	ApplicationsCount int64   `json:"applications_count"`
}

type RecentApplication struct {
	ID             int64     `json:"id"`
	CandidateName  string    `json:"candidate_name"`
	CandidateEmail string    `json:"candidate_email"`
	JobTitle       string    `json:"job_title"`
	Status         string    `json:"status"`
	MatchScore     *float64  `json:"match_score,omitempty"`
	AppliedAt      time.Time `json:"applied_at"`
}

type ScreeningPerformance struct {
	TotalScreenings int64              `json:"total_screenings"`
	AverageScores   AverageScores      `json:"average_scores"`
	Recommendations map[string]int64   `json:"recommendations"`
	PeriodDays      int                `json:"period_days"`
}

type AverageScores struct {
	Technical     float64 `json:"technical"`
	Communication float64 `json:"communication"`
	CulturalFit   float64 `json:"cultural_fit"`
	Overall       float64 `json:"overall"`
}

// FunnelStage is one cumulative step of the hiring funnel: a candidate counted
// at "Interview" is also counted at every earlier stage.
type FunnelStage struct {
	Stage      string  `json:"stage"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

type HiringFunnel struct {
	TotalApplications int64              `json:"total_applications"`
	Funnel            []FunnelStage      `json:"funnel"`
	ConversionRates   map[string]float64 `json:"conversion_rates"`
}

type DashboardRepository interface {
	Stats(ctx context.Context) (*DashboardStats, error)
	TopJobs(ctx context.Context, limit int) ([]TopJob, error)
	RecentApplications(ctx context.Context, limit int) ([]RecentApplication, error)
	PipelineOverview(ctx context.Context) (map[string]int64, error)
	CompletedScreeningsSince(ctx context.Context, since time.Time) ([]Screening, error)
	FunnelCounts(ctx context.Context, jobID int64) (total int64, byStatus map[string]int64, err error)
}

type DashboardUsecase interface {
	GetStats(ctx context.Context) (*DashboardStats, error)
	GetRecentActivity(ctx context.Context, limit int) ([]ActivityLog, error)
	GetPipelineOverview(ctx context.Context) (map[string]int64, error)
	GetTopJobs(ctx context.Context, limit int) ([]TopJob, error)
	GetRecentApplications(ctx context.Context, limit int) ([]RecentApplication, error)
	GetScreeningPerformance(ctx context.Context, days int) (*ScreeningPerformance, error)
	GetHiringFunnel(ctx context.Context, jobID int64) (*HiringFunnel, error)
}

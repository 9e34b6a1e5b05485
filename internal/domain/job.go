package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// Job statuses
const (
	JobStatusDraft  = "draft"
	JobStatusActive = "active"
	JobStatusPaused = "paused"
	JobStatusClosed = "closed"
)

type Job struct {
	ID                int64      `json:"id"`
	Title             string     `json:"title"`
	Department        *string    `json:"department,omitempty"`
	Location          *string    `json:"location,omitempty"`
	JobType           string     `json:"job_type"` // full_time, part_time, contract, internship
	ExperienceLevel   *string    `json:"experience_level,omitempty"`
	SalaryMin         *int64     `json:"salary_min,omitempty"`
	SalaryMax         *int64     `json:"salary_max,omitempty"`
	Description       string     `json:"description"`
	Requirements      *string    `json:"requirements,omitempty"`
	Responsibilities  *string    `json:"responsibilities,omitempty"`
	SkillsRequired    []string   `json:"skills_required,omitempty"`
	Benefits          *string    `json:"benefits,omitempty"`
	Status            string     `json:"status"`
	CreatedBy         int64      `json:"created_by"`
	Deadline          *time.Time `json:"deadline,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	ApplicationsCount int64      `json:"applications_count"`
}

// JobFilter narrows job listings
type JobFilter struct {
	Status string
	Search string
	Skip   int
	Limit  int
}

type JobStats struct {
	TotalJobs  int64 `json:"total_jobs"`
	ActiveJobs int64 `json:"active_jobs"`
	DraftJobs  int64 `json:"draft_jobs"`
	ClosedJobs int64 `json:"closed_jobs"`
}

// PipelineSummary is the per-job funnel aggregate served to the job detail view.
// Counts are computed server-side; clients treat them as read-only.
type PipelineSummary struct {
	JobID           int64            `json:"job_id"`
	Total           int64            `json:"total"`
	ByStatus        map[string]int64 `json:"by_status"`
	AverageMatchScore float64        `json:"average_match_score"`
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	Fetch(ctx context.Context, filter JobFilter) ([]Job, error)
	FetchPublicActive(ctx context.Context, search, jobType string, skip, limit int) ([]Job, error)
	Update(ctx context.Context, job *Job) error
	UpdateStatus(ctx context.Context, id int64, status string) (*Job, error)
	Delete(ctx context.Context, id int64) error
	CountApplications(ctx context.Context, jobID int64) (int64, error)
	Stats(ctx context.Context) (*JobStats, error)
	PipelineSummary(ctx context.Context, jobID int64) (*PipelineSummary, error)
}

type JobUsecase interface {
	CreateJob(ctx context.Context, userID int64, job *Job) error
	GetJobDetails(ctx context.Context, id int64) (*Job, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]Job, error)
	UpdateJob(ctx context.Context, job *Job) (*Job, error)
	DeleteJob(ctx context.Context, id int64) error
	PublishJob(ctx context.Context, id int64) (*Job, error)
	PauseJob(ctx context.Context, id int64) (*Job, error)
	ReopenJob(ctx context.Context, id int64) (*Job, error)
	CloseJob(ctx context.Context, id int64) (*Job, error)
	GetJobStats(ctx context.Context) (*JobStats, error)
	GetPipelineSummary(ctx context.Context, jobID int64) (*PipelineSummary, error)
}

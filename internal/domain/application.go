package domain

import (
	"context"
	"time"
)

// Application statuses
const (
	ApplicationStatusPending     = "pending"
	ApplicationStatusScreening   = "screening"
	ApplicationStatusShortlisted = "shortlisted"
	ApplicationStatusInterview   = "interview"
	ApplicationStatusOffered     = "offered"
	ApplicationStatusHired       = "hired"
	ApplicationStatusRejected    = "rejected"
)

// AI recommendations attached by the resume scorer
const (
	RecommendationStrongYes = "strong_yes"
	RecommendationYes       = "yes"
	RecommendationMaybe     = "maybe"
	RecommendationNo        = "no"
)

// ValidApplicationStatuses guards status writes coming from update requests
var ValidApplicationStatuses = map[string]bool{
	ApplicationStatusPending:     true,
	ApplicationStatusScreening:   true,
	ApplicationStatusShortlisted: true,
	ApplicationStatusInterview:   true,
	ApplicationStatusOffered:     true,
	ApplicationStatusHired:       true,
	ApplicationStatusRejected:    true,
}

type Application struct {
	ID              int64       `json:"id"`
	JobID           int64       `json:"job_id"`
	CandidateID     int64       `json:"candidate_id"`
	Status          string      `json:"status"`
	CoverLetter     *string     `json:"cover_letter,omitempty"`
	MatchScore      *float64    `json:"match_score,omitempty"` // 0-100, nil until a resume was analyzed
	SkillsMatch     *float64    `json:"skills_match,omitempty"`
	ExperienceMatch *float64    `json:"experience_match,omitempty"`
	AISummary       *string     `json:"ai_summary,omitempty"`
	AIRecommendation *string    `json:"ai_recommendation,omitempty"`
	Notes           *string     `json:"notes,omitempty"`
	AppliedAt       time.Time   `json:"applied_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	Candidate       *Candidate  `json:"candidate,omitempty"`
	Job             *Job        `json:"job,omitempty"`
	Screenings      []Screening `json:"screenings"`
}

type ApplicationFilter struct {
	JobID       int64
	CandidateID int64
	Status      string
	Search      string
	MinScore    *float64
	Skip        int
	Limit       int
}

// ApplicationCreate is the authenticated create payload: the candidate is
// found or created by email, mirroring the public apply flow.
type ApplicationCreate struct {
	JobID       int64
	Email       string
	FullName    string
	Phone       string
	CoverLetter string
	LinkedinURL string
}

type ApplicationUpdate struct {
	Status *string
	Notes  *string
}

type ApplicationStats struct {
	Total             int64   `json:"total"`
	Pending           int64   `json:"pending"`
	Screening         int64   `json:"screening"`
	Shortlisted       int64   `json:"shortlisted"`
	Interview         int64   `json:"interview"`
	Offered           int64   `json:"offered"`
	Hired             int64   `json:"hired"`
	Rejected          int64   `json:"rejected"`
	AverageMatchScore float64 `json:"average_match_score"`
}

// BulkInviteResult reports how many of the requested applications actually
// got a screening; rows with an in-flight screening are skipped, not failed.
type BulkInviteResult struct {
	Invited int `json:"invited"`
	Skipped int `json:"skipped"`
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	Fetch(ctx context.Context, filter ApplicationFilter) ([]Application, error)
	FetchByCandidate(ctx context.Context, candidateID int64) ([]Application, error)
	Exists(ctx context.Context, jobID, candidateID int64) (bool, error)
	Update(ctx context.Context, app *Application) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context, jobID int64) (*ApplicationStats, error)
}

type ApplicationUsecase interface {
	CreateApplication(ctx context.Context, create ApplicationCreate) (*Application, error)
	GetApplication(ctx context.Context, id int64) (*Application, error)
	ListApplications(ctx context.Context, filter ApplicationFilter) ([]Application, error)
	UpdateApplication(ctx context.Context, id int64, update ApplicationUpdate) (*Application, error)
	DeleteApplication(ctx context.Context, id int64) error
	Shortlist(ctx context.Context, id int64) (*Application, error)
	Reject(ctx context.Context, id int64) (*Application, error)
	BulkInviteScreening(ctx context.Context, applicationIDs []int64) (*BulkInviteResult, error)
	GetApplicationStats(ctx context.Context, jobID int64) (*ApplicationStats, error)
}

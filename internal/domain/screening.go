package domain

import (
	"context"
	"time"
)

// Screening statuses
const (
	ScreeningStatusScheduled  = "scheduled"
	ScreeningStatusInProgress = "in_progress"
	ScreeningStatusCompleted  = "completed"
	ScreeningStatusCancelled  = "cancelled"
)

// Screening sources
const (
	ScreeningSourceManual = "manual"
	ScreeningSourceAuto   = "auto"
	ScreeningSourceBulk   = "bulk"
)

// Screening recommendations produced on completion
const (
	ScreeningStrongPass = "strong_pass"
	ScreeningPass       = "pass"
	ScreeningBorderline = "borderline"
	ScreeningFail       = "fail"
)

type Screening struct {
	ID                 int64      `json:"id"`
	ApplicationID      int64      `json:"application_id"`
	Status             string     `json:"status"`
	Source             string     `json:"source"`
	ScheduledAt        *time.Time `json:"scheduled_at,omitempty"`
	StartedAt          *time.Time `json:"started_at,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	DurationMinutes    *int       `json:"duration_minutes,omitempty"`
	TechnicalScore     *float64   `json:"technical_score,omitempty"`
	CommunicationScore *float64   `json:"communication_score,omitempty"`
	CulturalFitScore   *float64   `json:"cultural_fit_score,omitempty"`
	OverallScore       *float64   `json:"overall_score,omitempty"`
	Recommendation     *string    `json:"recommendation,omitempty"`
	AIEvaluation       *string    `json:"ai_evaluation,omitempty"`
	Transcript         *string    `json:"transcript,omitempty"`
	Notes              *string    `json:"notes,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type ScreeningFilter struct {
	Status        string
	ApplicationID int64
	Skip          int
	Limit         int
}

type ScreeningUpdate struct {
	Status *string
	Notes  *string
}

type ScreeningStats struct {
	Total                     int64   `json:"total"`
	Scheduled                 int64   `json:"scheduled"`
	InProgress                int64   `json:"in_progress"`
	Completed                 int64   `json:"completed"`
	Cancelled                 int64   `json:"cancelled"`
	AverageTechnicalScore     float64 `json:"average_technical_score"`
	AverageCommunicationScore float64 `json:"average_communication_score"`
	AverageOverallScore       float64 `json:"average_overall_score"`
}

// ScreeningEvaluation is the generated assessment written on completion
type ScreeningEvaluation struct {
	TechnicalScore     float64
	CommunicationScore float64
	CulturalFitScore   float64
	OverallScore       float64
	Recommendation     string
	Details            string // JSON
	Transcript         string // JSON
	DurationMinutes    int
}

type ScreeningRepository interface {
	Create(ctx context.Context, screening *Screening) error
	GetByID(ctx context.Context, id int64) (*Screening, error)
	Fetch(ctx context.Context, filter ScreeningFilter) ([]Screening, error)
	FetchByApplication(ctx context.Context, applicationID int64) ([]Screening, error)
	HasActive(ctx context.Context, applicationID int64) (bool, error)
	Update(ctx context.Context, screening *Screening) error
	Stats(ctx context.Context) (*ScreeningStats, error)
}

type ScreeningUsecase interface {
	CreateScreening(ctx context.Context, applicationID int64, scheduledAt *time.Time) (*Screening, error)
	GetScreening(ctx context.Context, id int64) (*Screening, error)
	ListScreenings(ctx context.Context, filter ScreeningFilter) ([]Screening, error)
	UpdateScreening(ctx context.Context, id int64, update ScreeningUpdate) (*Screening, error)
	StartScreening(ctx context.Context, id int64) (*Screening, error)
	CompleteScreening(ctx context.Context, id int64) (*Screening, error)
	CancelScreening(ctx context.Context, id int64) (*Screening, error)
	GetScreeningStats(ctx context.Context) (*ScreeningStats, error)
}

package domain

import (
	"context"
	"time"
)

// Candidate sources
const (
	SourceDirect      = "direct"
	SourcePublicApply = "public_apply"
)

type Candidate struct {
	ID              int64     `json:"id"`
	Email           string    `json:"email"`
	FullName        string    `json:"full_name"`
	Phone           *string   `json:"phone,omitempty"`
	Location        *string   `json:"location,omitempty"`
	LinkedinURL     *string   `json:"linkedin_url,omitempty"`
	PortfolioURL    *string   `json:"portfolio_url,omitempty"`
	ResumeURL       *string   `json:"resume_url,omitempty"`
	ResumeText      *string   `json:"-"`
	Skills          *string   `json:"skills,omitempty"` // comma-delimited
	ExperienceYears *float64  `json:"experience_years,omitempty"`
	Education       *string   `json:"education,omitempty"`
	Summary         *string   `json:"summary,omitempty"`
	Source          string    `json:"source"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CandidateFilter struct {
	Search string
	Skills string
	Skip   int
	Limit  int
}

type CandidateStats struct {
	TotalCandidates int64            `json:"total_candidates"`
	BySource        map[string]int64 `json:"by_source"`
}

type CandidateRepository interface {
	Create(ctx context.Context, candidate *Candidate) error
	GetByID(ctx context.Context, id int64) (*Candidate, error)
	GetByEmail(ctx context.Context, email string) (*Candidate, error)
	Fetch(ctx context.Context, filter CandidateFilter) ([]Candidate, error)
	Update(ctx context.Context, candidate *Candidate) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*CandidateStats, error)
}

type CandidateUsecase interface {
	CreateCandidate(ctx context.Context, candidate *Candidate) error
	GetCandidate(ctx context.Context, id int64) (*Candidate, error)
	ListCandidates(ctx context.Context, filter CandidateFilter) ([]Candidate, error)
	UpdateCandidate(ctx context.Context, candidate *Candidate) (*Candidate, error)
	DeleteCandidate(ctx context.Context, id int64) error
	UploadResume(ctx context.Context, id int64, filename, contentType string, data []byte) (*Candidate, error)
	ListApplications(ctx context.Context, candidateID int64) ([]Application, error)
	GetCandidateStats(ctx context.Context) (*CandidateStats, error)
	Export(ctx context.Context, format string) ([]byte, string, error)
}

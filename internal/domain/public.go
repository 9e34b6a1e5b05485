package domain

import (
	"context"
	"time"
)

// PublicJob is the job-board projection of an active job; internal fields
// (creator, status, benefits-on-list) are withheld from the list view.
type PublicJob struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Department      *string    `json:"department,omitempty"`
	Location        *string    `json:"location,omitempty"`
	JobType         string     `json:"job_type"`
	ExperienceLevel *string    `json:"experience_level,omitempty"`
	SalaryMin       *int64     `json:"salary_min,omitempty"`
	SalaryMax       *int64     `json:"salary_max,omitempty"`
	Description     string     `json:"description"`
	Requirements    *string    `json:"requirements,omitempty"`
	Responsibilities *string   `json:"responsibilities,omitempty"`
	SkillsRequired  []string   `json:"skills_required,omitempty"`
	Benefits        *string    `json:"benefits,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	Deadline        *time.Time `json:"deadline,omitempty"`
}

// PublicApplyInput is the multipart application-submission payload.
// Resume is optional; when present it is parsed in memory and never written
// to disk as-is.
type PublicApplyInput struct {
	JobID       int64
	FullName    string
	Email       string
	Phone       string
	CoverLetter string
	ResumeName  string
	ResumeType  string
	ResumeData  []byte
}

type PublicApplyResult struct {
	Message       string `json:"message"`
	ApplicationID int64  `json:"application_id"`
}

// PublicApplicationStatus is what an applicant sees when checking by email
type PublicApplicationStatus struct {
	ID            int64     `json:"id"`
	JobTitle      *string   `json:"job_title,omitempty"`
	JobDepartment *string   `json:"job_department,omitempty"`
	Status        string    `json:"status"`
	AppliedAt     time.Time `json:"applied_at"`
}

type PublicUsecase interface {
	ListJobs(ctx context.Context, search, jobType string, skip, limit int) ([]PublicJob, error)
	GetJob(ctx context.Context, id int64) (*PublicJob, error)
	Apply(ctx context.Context, input PublicApplyInput) (*PublicApplyResult, error)
	StatusByEmail(ctx context.Context, email string) ([]PublicApplicationStatus, error)
}

package usecase

import (
	"context"
	"errors"
	"time"

	"talentbridge-backend/internal/domain"
	"talentbridge-backend/pkg/apperror"
)

// jobTransitions is the allowed status transition matrix. Every status write
// that arrives as a lifecycle action is checked against it server-side.
var jobTransitions = map[string]map[string]bool{
	domain.JobStatusDraft:  {domain.JobStatusActive: true},
	domain.JobStatusActive: {domain.JobStatusPaused: true, domain.JobStatusClosed: true},
	domain.JobStatusPaused: {domain.JobStatusActive: true, domain.JobStatusClosed: true},
	domain.JobStatusClosed: {},
}

type jobUsecase struct {
	jobRepo domain.JobRepository
}

func NewJobUsecase(jobRepo domain.JobRepository) domain.JobUsecase {
	return &jobUsecase{jobRepo: jobRepo}
}

func (u *jobUsecase) CreateJob(ctx context.Context, userID int64, job *domain.Job) error {
	if job.Title == "" {
		return apperror.BadRequest("Title is required")
	}
	if job.Description == "" {
		return apperror.BadRequest("Description is required")
	}
	if job.SalaryMin != nil && job.SalaryMax != nil && *job.SalaryMin > *job.SalaryMax {
		return apperror.BadRequest("salary_min cannot be greater than salary_max")
	}

	// New jobs always start in draft; publishing is an explicit action
	job.Status = domain.JobStatusDraft
	job.CreatedBy = userID
	job.CreatedAt = time.Now()
	job.UpdatedAt = time.Now()

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *jobUsecase) GetJobDetails(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	return job, nil
}

func (u *jobUsecase) ListJobs(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}
	jobs, err := u.jobRepo.Fetch(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return jobs, nil
}

func (u *jobUsecase) UpdateJob(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	existing, err := u.GetJobDetails(ctx, job.ID)
	if err != nil {
		return nil, err
	}
	if job.SalaryMin != nil && job.SalaryMax != nil && *job.SalaryMin > *job.SalaryMax {
		return nil, apperror.BadRequest("salary_min cannot be greater than salary_max")
	}

	// Status changes go through the lifecycle endpoints, not the generic update
	job.Status = existing.Status
	job.CreatedBy = existing.CreatedBy
	job.CreatedAt = existing.CreatedAt

	if err := u.jobRepo.Update(ctx, job); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	return job, nil
}

func (u *jobUsecase) DeleteJob(ctx context.Context, id int64) error {
	count, err := u.jobRepo.CountApplications(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if count > 0 {
		return apperror.BadRequest("Cannot delete a job with applications. Close it instead.")
	}

	if err := u.jobRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *jobUsecase) transition(ctx context.Context, id int64, target string) (*domain.Job, error) {
	job, err := u.GetJobDetails(ctx, id)
	if err != nil {
		return nil, err
	}

	if !jobTransitions[job.Status][target] {
		return nil, apperror.BadRequest("Cannot move job from " + job.Status + " to " + target)
	}

	updated, err := u.jobRepo.UpdateStatus(ctx, id, target)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	return updated, nil
}

func (u *jobUsecase) PublishJob(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := u.GetJobDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusDraft {
		return nil, apperror.BadRequest("Only draft jobs can be published")
	}
	return u.transition(ctx, id, domain.JobStatusActive)
}

func (u *jobUsecase) PauseJob(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := u.GetJobDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusActive {
		return nil, apperror.BadRequest("Only active jobs can be paused")
	}
	return u.transition(ctx, id, domain.JobStatusPaused)
}

func (u *jobUsecase) ReopenJob(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := u.GetJobDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusPaused {
		return nil, apperror.BadRequest("Only paused jobs can be reopened")
	}
	return u.transition(ctx, id, domain.JobStatusActive)
}

func (u *jobUsecase) CloseJob(ctx context.Context, id int64) (*domain.Job, error) {
	return u.transition(ctx, id, domain.JobStatusClosed)
}

func (u *jobUsecase) GetJobStats(ctx context.Context) (*domain.JobStats, error) {
	stats, err := u.jobRepo.Stats(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return stats, nil
}

func (u *jobUsecase) GetPipelineSummary(ctx context.Context, jobID int64) (*domain.PipelineSummary, error) {
	if _, err := u.GetJobDetails(ctx, jobID); err != nil {
		return nil, err
	}
	summary, err := u.jobRepo.PipelineSummary(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return summary, nil
}

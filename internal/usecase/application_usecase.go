package usecase

import (
	"context"
	"errors"
	"time"

	"talentbridge-backend/internal/domain"
	"talentbridge-backend/pkg/apperror"
	"talentbridge-backend/pkg/email"
	"talentbridge-backend/pkg/logger"
	"talentbridge-backend/pkg/matching"
)

// ScreeningNotifier sends screening invitations to candidates. Satisfied by
// email.EmailService; nil-safe callers must check IsConfigured first.
type ScreeningNotifier interface {
	SendScreeningInvite(data email.ScreeningInviteData) error
	IsConfigured() bool
}

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	candidateRepo   domain.CandidateRepository
	jobRepo         domain.JobRepository
	screeningRepo   domain.ScreeningRepository
	activityRepo    domain.ActivityRepository
	notifier        ScreeningNotifier
}

func NewApplicationUsecase(
	applicationRepo domain.ApplicationRepository,
	candidateRepo domain.CandidateRepository,
	jobRepo domain.JobRepository,
	screeningRepo domain.ScreeningRepository,
	activityRepo domain.ActivityRepository,
	notifier ScreeningNotifier,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: applicationRepo,
		candidateRepo:   candidateRepo,
		jobRepo:         jobRepo,
		screeningRepo:   screeningRepo,
		activityRepo:    activityRepo,
		notifier:        notifier,
	}
}

func (u *applicationUsecase) CreateApplication(ctx context.Context, create domain.ApplicationCreate) (*domain.Application, error) {
	job, err := u.jobRepo.GetByID(ctx, create.JobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	if job.Status != domain.JobStatusActive {
		return nil, apperror.BadRequest("This job is not accepting applications")
	}

	candidate, err := u.findOrCreateCandidate(ctx, create)
	if err != nil {
		return nil, err
	}

	exists, err := u.applicationRepo.Exists(ctx, job.ID, candidate.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.BadRequest("Candidate has already applied to this job")
	}

	app := &domain.Application{
		JobID:       job.ID,
		CandidateID: candidate.ID,
		Status:      domain.ApplicationStatusPending,
		AppliedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if create.CoverLetter != "" {
		app.CoverLetter = &create.CoverLetter
	}
	// Scores stay NULL here. Only the public apply path analyzes a resume.

	if err := u.applicationRepo.Create(ctx, app); err != nil {
		return nil, apperror.Internal(err)
	}

	u.recordActivity(ctx, "application_created", app.ID, candidate.FullName+" applied to "+job.Title)

	return u.GetApplication(ctx, app.ID)
}

func (u *applicationUsecase) findOrCreateCandidate(ctx context.Context, create domain.ApplicationCreate) (*domain.Candidate, error) {
	candidate, err := u.candidateRepo.GetByEmail(ctx, create.Email)
	if err == nil {
		return candidate, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}

	candidate = &domain.Candidate{
		Email:     create.Email,
		FullName:  create.FullName,
		Source:    domain.SourceDirect,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if create.Phone != "" {
		candidate.Phone = &create.Phone
	}
	if create.LinkedinURL != "" {
		candidate.LinkedinURL = &create.LinkedinURL
	}
	if err := u.candidateRepo.Create(ctx, candidate); err != nil {
		return nil, apperror.Internal(err)
	}
	return candidate, nil
}

// scoreApplication fills the AI assessment fields from the lexical matcher
// and hands the full result back so callers can enrich the candidate record
func scoreApplication(app *domain.Application, resumeText string, job *domain.Job) matching.Result {
	result := matching.AnalyzeResume(resumeText, matching.JobProfile{
		Title:            job.Title,
		Description:      job.Description,
		Requirements:     deref(job.Requirements),
		Responsibilities: deref(job.Responsibilities),
		ExperienceLevel:  deref(job.ExperienceLevel),
		Skills:           job.SkillsRequired,
	})
	app.MatchScore = &result.MatchScore
	app.SkillsMatch = &result.SkillsMatch
	app.ExperienceMatch = &result.ExperienceMatch
	app.AISummary = &result.Summary
	app.AIRecommendation = &result.Recommendation
	return result
}

func (u *applicationUsecase) GetApplication(ctx context.Context, id int64) (*domain.Application, error) {
	app, err := u.applicationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}
	return app, nil
}

func (u *applicationUsecase) ListApplications(ctx context.Context, filter domain.ApplicationFilter) ([]domain.Application, error) {
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}
	apps, err := u.applicationRepo.Fetch(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

func (u *applicationUsecase) UpdateApplication(ctx context.Context, id int64, update domain.ApplicationUpdate) (*domain.Application, error) {
	app, err := u.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Status != nil {
		if !domain.ValidApplicationStatuses[*update.Status] {
			return nil, apperror.BadRequest("Invalid application status")
		}
		app.Status = *update.Status
	}
	if update.Notes != nil {
		app.Notes = update.Notes
	}

	if err := u.applicationRepo.Update(ctx, app); err != nil {
		return nil, apperror.Internal(err)
	}
	return app, nil
}

func (u *applicationUsecase) DeleteApplication(ctx context.Context, id int64) error {
	if err := u.applicationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Application not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *applicationUsecase) Shortlist(ctx context.Context, id int64) (*domain.Application, error) {
	status := domain.ApplicationStatusShortlisted
	return u.UpdateApplication(ctx, id, domain.ApplicationUpdate{Status: &status})
}

func (u *applicationUsecase) Reject(ctx context.Context, id int64) (*domain.Application, error) {
	status := domain.ApplicationStatusRejected
	return u.UpdateApplication(ctx, id, domain.ApplicationUpdate{Status: &status})
}

// BulkInviteScreening schedules a screening for each application that does
// not already have one scheduled or running. Applications that cannot be
// invited are counted as skipped rather than failing the batch.
func (u *applicationUsecase) BulkInviteScreening(ctx context.Context, applicationIDs []int64) (*domain.BulkInviteResult, error) {
	if len(applicationIDs) == 0 {
		return nil, apperror.BadRequest("No application ids provided")
	}

	result := &domain.BulkInviteResult{}
	for _, id := range applicationIDs {
		app, err := u.applicationRepo.GetByID(ctx, id)
		if err != nil {
			result.Skipped++
			continue
		}

		active, err := u.screeningRepo.HasActive(ctx, id)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if active {
			result.Skipped++
			continue
		}

		screening := &domain.Screening{
			ApplicationID: id,
			Status:        domain.ScreeningStatusScheduled,
			Source:        domain.ScreeningSourceBulk,
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		}
		if err := u.screeningRepo.Create(ctx, screening); err != nil {
			return nil, apperror.Internal(err)
		}
		if err := u.applicationRepo.UpdateStatus(ctx, id, domain.ApplicationStatusScreening); err != nil {
			return nil, apperror.Internal(err)
		}
		result.Invited++

		u.sendInvite(app)
	}
	return result, nil
}

func (u *applicationUsecase) sendInvite(app *domain.Application) {
	if u.notifier == nil || !u.notifier.IsConfigured() || app.Candidate == nil || app.Job == nil {
		return
	}
	err := u.notifier.SendScreeningInvite(email.ScreeningInviteData{
		CandidateName:  app.Candidate.FullName,
		CandidateEmail: app.Candidate.Email,
		JobTitle:       app.Job.Title,
		DurationMins:   30,
	})
	if err != nil {
		logger.Log.Warn("failed to send screening invite", "application_id", app.ID, "error", err)
	}
}

func (u *applicationUsecase) GetApplicationStats(ctx context.Context, jobID int64) (*domain.ApplicationStats, error) {
	stats, err := u.applicationRepo.Stats(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return stats, nil
}

func (u *applicationUsecase) recordActivity(ctx context.Context, action string, entityID int64, details string) {
	if u.activityRepo == nil {
		return
	}
	entityType := "application"
	entry := &domain.ActivityLog{
		Action:     action,
		EntityType: &entityType,
		EntityID:   &entityID,
		Details:    &details,
	}
	if err := u.activityRepo.Record(ctx, entry); err != nil {
		logger.Log.Warn("failed to record activity", "action", action, "error", err)
	}
}

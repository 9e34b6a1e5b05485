package usecase_test

import (
	"context"
	"testing"

	"talentbridge-backend/internal/domain"
	"talentbridge-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetHiringFunnel(t *testing.T) {
	dashboardRepo := new(MockDashboardRepo)
	uc := usecase.NewDashboardUsecase(dashboardRepo, new(MockActivityRepo))

	dashboardRepo.On("FunnelCounts", mock.Anything, int64(0)).Return(int64(100), map[string]int64{
		domain.ApplicationStatusPending:     40,
		domain.ApplicationStatusRejected:    10,
		domain.ApplicationStatusScreening:   20,
		domain.ApplicationStatusShortlisted: 12,
		domain.ApplicationStatusInterview:   10,
		domain.ApplicationStatusOffered:     5,
		domain.ApplicationStatusHired:       3,
	}, nil)

	funnel, err := uc.GetHiringFunnel(context.Background(), 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(100), funnel.TotalApplications)
	assert.Len(t, funnel.Funnel, 6)

	// Stages are cumulative down the pipeline
	byStage := map[string]domain.FunnelStage{}
	for _, s := range funnel.Funnel {
		byStage[s.Stage] = s
	}
	assert.Equal(t, int64(100), byStage["Applied"].Count)
	assert.Equal(t, int64(50), byStage["Screening"].Count)
	assert.Equal(t, int64(30), byStage["Shortlisted"].Count)
	assert.Equal(t, int64(18), byStage["Interview"].Count)
	assert.Equal(t, int64(8), byStage["Offered"].Count)
	assert.Equal(t, int64(3), byStage["Hired"].Count)

	assert.Equal(t, 50.0, byStage["Screening"].Percentage)
	assert.Equal(t, 3.0, byStage["Hired"].Percentage)

	assert.Equal(t, 50.0, funnel.ConversionRates["Applied_to_Screening"])
	assert.Equal(t, 60.0, funnel.ConversionRates["Screening_to_Shortlisted"])
	assert.Equal(t, 60.0, funnel.ConversionRates["Shortlisted_to_Interview"])
	assert.Equal(t, 37.5, funnel.ConversionRates["Offered_to_Hired"])
}

func TestGetHiringFunnelEmpty(t *testing.T) {
	dashboardRepo := new(MockDashboardRepo)
	uc := usecase.NewDashboardUsecase(dashboardRepo, new(MockActivityRepo))

	dashboardRepo.On("FunnelCounts", mock.Anything, int64(3)).Return(int64(0), map[string]int64{}, nil)

	funnel, err := uc.GetHiringFunnel(context.Background(), 3)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), funnel.TotalApplications)
	// No applications means no stages and no rates at all
	assert.Empty(t, funnel.Funnel)
	assert.Empty(t, funnel.ConversionRates)
}

func TestGetPipelineOverviewIncludesZeroStatuses(t *testing.T) {
	dashboardRepo := new(MockDashboardRepo)
	uc := usecase.NewDashboardUsecase(dashboardRepo, new(MockActivityRepo))

	dashboardRepo.On("PipelineOverview", mock.Anything).Return(map[string]int64{
		domain.ApplicationStatusPending: 4,
		domain.ApplicationStatusHired:   1,
	}, nil)

	overview, err := uc.GetPipelineOverview(context.Background())
	assert.NoError(t, err)
	assert.Len(t, overview, 7)
	assert.Equal(t, int64(4), overview[domain.ApplicationStatusPending])
	assert.Equal(t, int64(1), overview[domain.ApplicationStatusHired])
	assert.Equal(t, int64(0), overview[domain.ApplicationStatusRejected])
	assert.Equal(t, int64(0), overview[domain.ApplicationStatusInterview])
}

func TestGetScreeningPerformance(t *testing.T) {
	dashboardRepo := new(MockDashboardRepo)
	uc := usecase.NewDashboardUsecase(dashboardRepo, new(MockActivityRepo))

	strongPass := domain.ScreeningStrongPass
	pass := domain.ScreeningPass
	f := func(v float64) *float64 { return &v }
	dashboardRepo.On("CompletedScreeningsSince", mock.Anything, mock.AnythingOfType("time.Time")).Return([]domain.Screening{
		{TechnicalScore: f(80), CommunicationScore: f(70), CulturalFitScore: f(90), OverallScore: f(80), Recommendation: &strongPass},
		{TechnicalScore: f(60), CommunicationScore: f(60), CulturalFitScore: f(60), OverallScore: f(60), Recommendation: &pass},
	}, nil)

	perf, err := uc.GetScreeningPerformance(context.Background(), 30)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), perf.TotalScreenings)
	assert.Equal(t, 30, perf.PeriodDays)
	assert.Equal(t, 70.0, perf.AverageScores.Technical)
	assert.Equal(t, 65.0, perf.AverageScores.Communication)
	assert.Equal(t, 75.0, perf.AverageScores.CulturalFit)
	assert.Equal(t, 70.0, perf.AverageScores.Overall)
	assert.Equal(t, int64(1), perf.Recommendations[domain.ScreeningStrongPass])
	assert.Equal(t, int64(1), perf.Recommendations[domain.ScreeningPass])
}

func TestGetScreeningPerformanceClampsDays(t *testing.T) {
	dashboardRepo := new(MockDashboardRepo)
	uc := usecase.NewDashboardUsecase(dashboardRepo, new(MockActivityRepo))

	dashboardRepo.On("CompletedScreeningsSince", mock.Anything, mock.AnythingOfType("time.Time")).Return([]domain.Screening{}, nil)

	perf, err := uc.GetScreeningPerformance(context.Background(), -1)
	assert.NoError(t, err)
	assert.Equal(t, 30, perf.PeriodDays)
	assert.Equal(t, int64(0), perf.TotalScreenings)
}

func TestGetRecentActivityClampsLimit(t *testing.T) {
	activityRepo := new(MockActivityRepo)
	uc := usecase.NewDashboardUsecase(new(MockDashboardRepo), activityRepo)

	activityRepo.On("Recent", mock.Anything, 20).Return([]domain.ActivityLog{}, nil)

	_, err := uc.GetRecentActivity(context.Background(), 5000)
	assert.NoError(t, err)
	activityRepo.AssertExpectations(t)
}

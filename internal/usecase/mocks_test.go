package usecase_test

import (
	"context"
	"time"

	"talentbridge-backend/internal/domain"
	"talentbridge-backend/pkg/email"

	"github.com/stretchr/testify/mock"
)

// Mock Repositories

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepo) Fetch(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}
func (m *MockJobRepo) FetchPublicActive(ctx context.Context, search, jobType string, skip, limit int) ([]domain.Job, error) {
	args := m.Called(ctx, search, jobType, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}
func (m *MockJobRepo) Update(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Job, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockJobRepo) CountApplications(ctx context.Context, jobID int64) (int64, error) {
	args := m.Called(ctx, jobID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockJobRepo) Stats(ctx context.Context) (*domain.JobStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobStats), args.Error(1)
}
func (m *MockJobRepo) PipelineSummary(ctx context.Context, jobID int64) (*domain.PipelineSummary, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PipelineSummary), args.Error(1)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) Fetch(ctx context.Context, filter domain.ApplicationFilter) ([]domain.Application, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) FetchByCandidate(ctx context.Context, candidateID int64) ([]domain.Application, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) Exists(ctx context.Context, jobID, candidateID int64) (bool, error) {
	args := m.Called(ctx, jobID, candidateID)
	return args.Bool(0), args.Error(1)
}
func (m *MockApplicationRepo) Update(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}
func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *MockApplicationRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockApplicationRepo) Stats(ctx context.Context, jobID int64) (*domain.ApplicationStats, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApplicationStats), args.Error(1)
}

type MockScreeningRepo struct {
	mock.Mock
}

func (m *MockScreeningRepo) Create(ctx context.Context, screening *domain.Screening) error {
	return m.Called(ctx, screening).Error(0)
}
func (m *MockScreeningRepo) GetByID(ctx context.Context, id int64) (*domain.Screening, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Screening), args.Error(1)
}
func (m *MockScreeningRepo) Fetch(ctx context.Context, filter domain.ScreeningFilter) ([]domain.Screening, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Screening), args.Error(1)
}
func (m *MockScreeningRepo) FetchByApplication(ctx context.Context, applicationID int64) ([]domain.Screening, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Screening), args.Error(1)
}
func (m *MockScreeningRepo) HasActive(ctx context.Context, applicationID int64) (bool, error) {
	args := m.Called(ctx, applicationID)
	return args.Bool(0), args.Error(1)
}
func (m *MockScreeningRepo) Update(ctx context.Context, screening *domain.Screening) error {
	return m.Called(ctx, screening).Error(0)
}
func (m *MockScreeningRepo) Stats(ctx context.Context) (*domain.ScreeningStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScreeningStats), args.Error(1)
}

type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) Create(ctx context.Context, candidate *domain.Candidate) error {
	return m.Called(ctx, candidate).Error(0)
}
func (m *MockCandidateRepo) GetByID(ctx context.Context, id int64) (*domain.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}
func (m *MockCandidateRepo) GetByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}
func (m *MockCandidateRepo) Fetch(ctx context.Context, filter domain.CandidateFilter) ([]domain.Candidate, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Candidate), args.Error(1)
}
func (m *MockCandidateRepo) Update(ctx context.Context, candidate *domain.Candidate) error {
	return m.Called(ctx, candidate).Error(0)
}
func (m *MockCandidateRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockCandidateRepo) Stats(ctx context.Context) (*domain.CandidateStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateStats), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

type MockSettingRepo struct {
	mock.Mock
}

func (m *MockSettingRepo) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}
func (m *MockSettingRepo) Set(ctx context.Context, key, value string) error {
	return m.Called(ctx, key, value).Error(0)
}

type MockActivityRepo struct {
	mock.Mock
}

func (m *MockActivityRepo) Record(ctx context.Context, entry *domain.ActivityLog) error {
	return m.Called(ctx, entry).Error(0)
}
func (m *MockActivityRepo) Recent(ctx context.Context, limit int) ([]domain.ActivityLog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityLog), args.Error(1)
}

type MockDashboardRepo struct {
	mock.Mock
}

func (m *MockDashboardRepo) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}
func (m *MockDashboardRepo) TopJobs(ctx context.Context, limit int) ([]domain.TopJob, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TopJob), args.Error(1)
}
func (m *MockDashboardRepo) RecentApplications(ctx context.Context, limit int) ([]domain.RecentApplication, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecentApplication), args.Error(1)
}
func (m *MockDashboardRepo) PipelineOverview(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}
func (m *MockDashboardRepo) CompletedScreeningsSince(ctx context.Context, since time.Time) ([]domain.Screening, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Screening), args.Error(1)
}
func (m *MockDashboardRepo) FunnelCounts(ctx context.Context, jobID int64) (int64, map[string]int64, error) {
	args := m.Called(ctx, jobID)
	if args.Get(1) == nil {
		return args.Get(0).(int64), nil, args.Error(2)
	}
	return args.Get(0).(int64), args.Get(1).(map[string]int64), args.Error(2)
}

type MockSettingsUsecase struct {
	mock.Mock
}

func (m *MockSettingsUsecase) GetSettings(ctx context.Context) (*domain.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}
func (m *MockSettingsUsecase) UpdateSettings(ctx context.Context, update domain.SettingsUpdate) (*domain.Settings, error) {
	args := m.Called(ctx, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendScreeningInvite(data email.ScreeningInviteData) error {
	return m.Called(data).Error(0)
}
func (m *MockNotifier) IsConfigured() bool {
	return m.Called().Bool(0)
}

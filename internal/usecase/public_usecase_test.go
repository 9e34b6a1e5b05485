package usecase_test

import (
	"context"
	"testing"

	"talentbridge-backend/internal/domain"
	"talentbridge-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type publicFixture struct {
	jobRepo       *MockJobRepo
	candidateRepo *MockCandidateRepo
	appRepo       *MockApplicationRepo
	screeningRepo *MockScreeningRepo
	settings      *MockSettingsUsecase
	uc            domain.PublicUsecase
}

func newPublicFixture() *publicFixture {
	f := &publicFixture{
		jobRepo:       new(MockJobRepo),
		candidateRepo: new(MockCandidateRepo),
		appRepo:       new(MockApplicationRepo),
		screeningRepo: new(MockScreeningRepo),
		settings:      new(MockSettingsUsecase),
	}
	f.uc = usecase.NewPublicUsecase(f.jobRepo, f.candidateRepo, f.appRepo, f.screeningRepo, nil, f.settings, nil, nil)
	return f
}

func TestPublicGetJobHidesInactiveJobs(t *testing.T) {
	for _, status := range []string{domain.JobStatusDraft, domain.JobStatusPaused, domain.JobStatusClosed} {
		f := newPublicFixture()
		f.jobRepo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Job{ID: 1, Status: status}, nil)

		_, err := f.uc.GetJob(context.Background(), 1)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Job not found")
	}
}

func TestPublicGetJobServesActiveJob(t *testing.T) {
	f := newPublicFixture()
	f.jobRepo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Job{
		ID: 1, Title: "Backend Engineer", Status: domain.JobStatusActive, CreatedBy: 99,
	}, nil)

	job, err := f.uc.GetJob(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, "Backend Engineer", job.Title)
}

func TestPublicApplyRejectsInactiveJob(t *testing.T) {
	f := newPublicFixture()
	f.jobRepo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Job{ID: 1, Status: domain.JobStatusPaused}, nil)

	_, err := f.uc.Apply(context.Background(), domain.PublicApplyInput{
		JobID: 1, FullName: "Jane", Email: "jane@example.com",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not accepting applications")
}

func TestPublicApplyRejectsDuplicate(t *testing.T) {
	f := newPublicFixture()
	f.jobRepo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Job{ID: 1, Status: domain.JobStatusActive}, nil)
	f.candidateRepo.On("GetByEmail", mock.Anything, "jane@example.com").Return(&domain.Candidate{ID: 2}, nil)
	f.appRepo.On("Exists", mock.Anything, int64(1), int64(2)).Return(true, nil)

	_, err := f.uc.Apply(context.Background(), domain.PublicApplyInput{
		JobID: 1, FullName: "Jane", Email: "jane@example.com",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already applied")
}

func TestPublicApplyCreatesCandidateAndApplication(t *testing.T) {
	f := newPublicFixture()
	f.jobRepo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Job{ID: 1, Title: "Backend Engineer", Status: domain.JobStatusActive}, nil)
	f.candidateRepo.On("GetByEmail", mock.Anything, "jane@example.com").Return(nil, domain.ErrNotFound)
	f.candidateRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Candidate")).Return(nil).Run(func(args mock.Arguments) {
		c := args.Get(1).(*domain.Candidate)
		c.ID = 5
		assert.Equal(t, domain.SourcePublicApply, c.Source)
	})
	f.appRepo.On("Exists", mock.Anything, int64(1), int64(5)).Return(false, nil)
	f.appRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Application")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Application).ID = 11
	})

	result, err := f.uc.Apply(context.Background(), domain.PublicApplyInput{
		JobID: 1, FullName: "Jane", Email: "jane@example.com",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(11), result.ApplicationID)
	assert.Equal(t, "Application submitted successfully", result.Message)
	// No resume, no match score, so no auto-invite lookup
	f.settings.AssertNotCalled(t, "GetSettings", mock.Anything)
}

func TestPublicApplyRejectsBadResumeType(t *testing.T) {
	f := newPublicFixture()
	f.jobRepo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Job{ID: 1, Status: domain.JobStatusActive}, nil)

	_, err := f.uc.Apply(context.Background(), domain.PublicApplyInput{
		JobID: 1, FullName: "Jane", Email: "jane@example.com",
		ResumeName: "resume.exe", ResumeType: "application/octet-stream", ResumeData: []byte("MZ"),
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Only PDF and Word documents are allowed")
	f.candidateRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.appRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPublicApplyPersistsExtractedProfile(t *testing.T) {
	f := newPublicFixture()
	resume := "Go developer with 8 years of experience building REST APIs with Go and PostgreSQL"
	f.jobRepo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Job{
		ID: 1, Title: "Go Developer", Status: domain.JobStatusActive,
		Description:    "Build REST APIs with Go and PostgreSQL",
		SkillsRequired: []string{"Go", "PostgreSQL"},
	}, nil)
	f.candidateRepo.On("GetByEmail", mock.Anything, "dev@example.com").Return(&domain.Candidate{
		ID: 5, Email: "dev@example.com", FullName: "Dev", ResumeText: &resume,
	}, nil)
	f.appRepo.On("Exists", mock.Anything, int64(1), int64(5)).Return(false, nil)
	f.appRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Application")).Return(nil)
	f.settings.On("GetSettings", mock.Anything).Return(&domain.Settings{}, nil)
	f.candidateRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Candidate")).Return(nil).Run(func(args mock.Arguments) {
		c := args.Get(1).(*domain.Candidate)
		assert.NotNil(t, c.Skills)
		assert.Contains(t, *c.Skills, "Go")
		assert.NotNil(t, c.ExperienceYears)
		assert.Equal(t, 8.0, *c.ExperienceYears)
		assert.NotNil(t, c.Summary)
	})

	_, err := f.uc.Apply(context.Background(), domain.PublicApplyInput{
		JobID: 1, FullName: "Dev", Email: "dev@example.com",
	})
	assert.NoError(t, err)
	f.candidateRepo.AssertExpectations(t)
}

func TestPublicApplyAutoInvite(t *testing.T) {
	resume := "Go developer with 8 years of experience building REST APIs with Go and PostgreSQL"
	activeJob := func() *domain.Job {
		return &domain.Job{
			ID: 1, Title: "Go Developer", Status: domain.JobStatusActive,
			Description:    "Build REST APIs with Go and PostgreSQL",
			SkillsRequired: []string{"Go", "PostgreSQL"},
		}
	}
	existing := func() *domain.Candidate {
		return &domain.Candidate{ID: 5, Email: "dev@example.com", FullName: "Dev", ResumeText: &resume}
	}

	t.Run("Schedules an auto screening above the threshold", func(t *testing.T) {
		f := newPublicFixture()
		f.jobRepo.On("GetByID", mock.Anything, int64(1)).Return(activeJob(), nil)
		f.candidateRepo.On("GetByEmail", mock.Anything, "dev@example.com").Return(existing(), nil)
		f.candidateRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Candidate")).Return(nil)
		f.appRepo.On("Exists", mock.Anything, int64(1), int64(5)).Return(false, nil)
		f.appRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Application")).Return(nil).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Application).ID = 11
		})
		f.settings.On("GetSettings", mock.Anything).Return(&domain.Settings{AutoInviteScreening: true, AutoInviteThreshold: 1}, nil)
		f.screeningRepo.On("HasActive", mock.Anything, int64(11)).Return(false, nil)
		f.screeningRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Screening")).Return(nil).Run(func(args mock.Arguments) {
			s := args.Get(1).(*domain.Screening)
			assert.Equal(t, domain.ScreeningSourceAuto, s.Source)
			assert.Equal(t, domain.ScreeningStatusScheduled, s.Status)
		})
		f.appRepo.On("UpdateStatus", mock.Anything, int64(11), domain.ApplicationStatusScreening).Return(nil)

		_, err := f.uc.Apply(context.Background(), domain.PublicApplyInput{
			JobID: 1, FullName: "Dev", Email: "dev@example.com",
		})
		assert.NoError(t, err)
		f.screeningRepo.AssertExpectations(t)
	})

	t.Run("Skips the invite below the threshold", func(t *testing.T) {
		f := newPublicFixture()
		f.jobRepo.On("GetByID", mock.Anything, int64(1)).Return(activeJob(), nil)
		f.candidateRepo.On("GetByEmail", mock.Anything, "dev@example.com").Return(existing(), nil)
		f.candidateRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Candidate")).Return(nil)
		f.appRepo.On("Exists", mock.Anything, int64(1), int64(5)).Return(false, nil)
		f.appRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Application")).Return(nil)
		f.settings.On("GetSettings", mock.Anything).Return(&domain.Settings{AutoInviteScreening: true, AutoInviteThreshold: 100}, nil)

		_, err := f.uc.Apply(context.Background(), domain.PublicApplyInput{
			JobID: 1, FullName: "Dev", Email: "dev@example.com",
		})
		assert.NoError(t, err)
		f.screeningRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Skips the invite when the feature is disabled", func(t *testing.T) {
		f := newPublicFixture()
		f.jobRepo.On("GetByID", mock.Anything, int64(1)).Return(activeJob(), nil)
		f.candidateRepo.On("GetByEmail", mock.Anything, "dev@example.com").Return(existing(), nil)
		f.candidateRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Candidate")).Return(nil)
		f.appRepo.On("Exists", mock.Anything, int64(1), int64(5)).Return(false, nil)
		f.appRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Application")).Return(nil)
		f.settings.On("GetSettings", mock.Anything).Return(&domain.Settings{AutoInviteScreening: false, AutoInviteThreshold: 1}, nil)

		_, err := f.uc.Apply(context.Background(), domain.PublicApplyInput{
			JobID: 1, FullName: "Dev", Email: "dev@example.com",
		})
		assert.NoError(t, err)
		f.screeningRepo.AssertNotCalled(t, "HasActive", mock.Anything, mock.Anything)
	})
}

func TestStatusByEmail(t *testing.T) {
	t.Run("Unknown email yields an empty list", func(t *testing.T) {
		f := newPublicFixture()
		f.candidateRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, domain.ErrNotFound)

		statuses, err := f.uc.StatusByEmail(context.Background(), "ghost@example.com")
		assert.NoError(t, err)
		assert.Empty(t, statuses)
	})

	t.Run("Maps job title and department", func(t *testing.T) {
		f := newPublicFixture()
		dept := "Engineering"
		f.candidateRepo.On("GetByEmail", mock.Anything, "dev@example.com").Return(&domain.Candidate{ID: 5}, nil)
		f.appRepo.On("FetchByCandidate", mock.Anything, int64(5)).Return([]domain.Application{
			{ID: 1, Status: domain.ApplicationStatusShortlisted, Job: &domain.Job{Title: "Go Developer", Department: &dept}},
		}, nil)

		statuses, err := f.uc.StatusByEmail(context.Background(), "dev@example.com")
		assert.NoError(t, err)
		assert.Len(t, statuses, 1)
		assert.Equal(t, "Go Developer", *statuses[0].JobTitle)
		assert.Equal(t, "Engineering", *statuses[0].JobDepartment)
		assert.Equal(t, domain.ApplicationStatusShortlisted, statuses[0].Status)
	})
}

package usecase_test

import (
	"context"
	"strings"
	"testing"

	"talentbridge-backend/internal/domain"
	"talentbridge-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreateCandidateRejectsDuplicateEmail(t *testing.T) {
	candidateRepo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(candidateRepo, new(MockApplicationRepo), nil)

	candidateRepo.On("GetByEmail", mock.Anything, "taken@example.com").Return(&domain.Candidate{ID: 1}, nil)

	err := uc.CreateCandidate(context.Background(), &domain.Candidate{
		Email: "taken@example.com", FullName: "Jane Doe",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	candidateRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateCandidatePreservesResumeFields(t *testing.T) {
	candidateRepo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(candidateRepo, new(MockApplicationRepo), nil)

	resumeURL := "/uploads/resumes/candidate_1_cv.pdf"
	resumeText := "extracted text"
	candidateRepo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Candidate{
		ID: 1, Email: "a@b.com", FullName: "Old Name",
		ResumeURL: &resumeURL, ResumeText: &resumeText, Source: domain.SourcePublicApply,
	}, nil)
	candidateRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Candidate")).Return(nil)

	updated, err := uc.UpdateCandidate(context.Background(), &domain.Candidate{
		ID: 1, Email: "a@b.com", FullName: "New Name", Source: "direct",
	})
	assert.NoError(t, err)
	assert.Equal(t, "New Name", updated.FullName)
	assert.Equal(t, resumeURL, *updated.ResumeURL)
	assert.Equal(t, resumeText, *updated.ResumeText)
	assert.Equal(t, domain.SourcePublicApply, updated.Source)
}

func TestUploadResumeValidation(t *testing.T) {
	candidateRepo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(candidateRepo, new(MockApplicationRepo), nil)

	candidateRepo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Candidate{ID: 1}, nil)

	t.Run("Should reject an empty file", func(t *testing.T) {
		_, err := uc.UploadResume(context.Background(), 1, "cv.pdf", "application/pdf", nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})

	t.Run("Should reject an unsupported type", func(t *testing.T) {
		_, err := uc.UploadResume(context.Background(), 1, "cv.exe", "application/octet-stream", []byte("MZ"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "PDF or Word")
	})
}

func TestExportCSV(t *testing.T) {
	candidateRepo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(candidateRepo, new(MockApplicationRepo), nil)

	phone := "+1 555 0100"
	years := 6.5
	candidateRepo.On("Fetch", mock.Anything, mock.AnythingOfType("domain.CandidateFilter")).Return([]domain.Candidate{
		{ID: 1, FullName: "Jane Doe", Email: "jane@example.com", Phone: &phone, ExperienceYears: &years, Source: "direct"},
	}, nil)

	data, contentType, err := uc.Export(context.Background(), "csv")
	assert.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Full Name")
	assert.Contains(t, lines[1], "jane@example.com")
	assert.Contains(t, lines[1], "6.5")
}

func TestExportXLSX(t *testing.T) {
	candidateRepo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(candidateRepo, new(MockApplicationRepo), nil)

	candidateRepo.On("Fetch", mock.Anything, mock.AnythingOfType("domain.CandidateFilter")).Return([]domain.Candidate{
		{ID: 1, FullName: "Jane Doe", Email: "jane@example.com", Source: "direct"},
	}, nil)

	data, contentType, err := uc.Export(context.Background(), "xlsx")
	assert.NoError(t, err)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", contentType)
	assert.NotEmpty(t, data)
	// xlsx files are zip archives
	assert.Equal(t, byte('P'), data[0])
	assert.Equal(t, byte('K'), data[1])
}

func TestExportUnknownFormat(t *testing.T) {
	candidateRepo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(candidateRepo, new(MockApplicationRepo), nil)

	candidateRepo.On("Fetch", mock.Anything, mock.AnythingOfType("domain.CandidateFilter")).Return([]domain.Candidate{}, nil)

	_, _, err := uc.Export(context.Background(), "pdf")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Unsupported export format")
}

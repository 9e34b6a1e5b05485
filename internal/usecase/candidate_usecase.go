package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	"talentbridge-backend/internal/domain"
	"talentbridge-backend/pkg/apperror"
	"talentbridge-backend/pkg/resume"
	"talentbridge-backend/pkg/storage"

	"github.com/xuri/excelize/v2"
)

const maxResumeSize = 10 << 20 // 10 MB

type candidateUsecase struct {
	candidateRepo   domain.CandidateRepository
	applicationRepo domain.ApplicationRepository
	files           storage.Storage
}

func NewCandidateUsecase(candidateRepo domain.CandidateRepository, applicationRepo domain.ApplicationRepository, files storage.Storage) domain.CandidateUsecase {
	return &candidateUsecase{
		candidateRepo:   candidateRepo,
		applicationRepo: applicationRepo,
		files:           files,
	}
}

func (u *candidateUsecase) CreateCandidate(ctx context.Context, candidate *domain.Candidate) error {
	if candidate.Email == "" {
		return apperror.BadRequest("Email is required")
	}
	if candidate.FullName == "" {
		return apperror.BadRequest("Full name is required")
	}

	if _, err := u.candidateRepo.GetByEmail(ctx, candidate.Email); err == nil {
		return apperror.BadRequest("A candidate with this email already exists")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return apperror.Internal(err)
	}

	if candidate.Source == "" {
		candidate.Source = domain.SourceDirect
	}
	candidate.CreatedAt = time.Now()
	candidate.UpdatedAt = time.Now()

	if err := u.candidateRepo.Create(ctx, candidate); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *candidateUsecase) GetCandidate(ctx context.Context, id int64) (*domain.Candidate, error) {
	candidate, err := u.candidateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Candidate not found")
		}
		return nil, apperror.Internal(err)
	}
	return candidate, nil
}

func (u *candidateUsecase) ListCandidates(ctx context.Context, filter domain.CandidateFilter) ([]domain.Candidate, error) {
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}
	candidates, err := u.candidateRepo.Fetch(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return candidates, nil
}

func (u *candidateUsecase) UpdateCandidate(ctx context.Context, candidate *domain.Candidate) (*domain.Candidate, error) {
	existing, err := u.GetCandidate(ctx, candidate.ID)
	if err != nil {
		return nil, err
	}

	// Resume fields are owned by the upload flow
	candidate.ResumeURL = existing.ResumeURL
	candidate.ResumeText = existing.ResumeText
	candidate.Source = existing.Source
	candidate.CreatedAt = existing.CreatedAt

	if err := u.candidateRepo.Update(ctx, candidate); err != nil {
		return nil, apperror.Internal(err)
	}
	return candidate, nil
}

func (u *candidateUsecase) DeleteCandidate(ctx context.Context, id int64) error {
	if err := u.candidateRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Candidate not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

// UploadResume stores the resume file and extracts its text for matching.
func (u *candidateUsecase) UploadResume(ctx context.Context, id int64, filename, contentType string, data []byte) (*domain.Candidate, error) {
	candidate, err := u.GetCandidate(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, apperror.BadRequest("Resume file is empty")
	}
	if len(data) > maxResumeSize {
		return nil, apperror.BadRequest("Resume file exceeds the 10MB limit")
	}
	if !resume.IsAllowedType(contentType) {
		return nil, apperror.BadRequest("Resume must be a PDF or Word document")
	}

	url, err := u.files.Save(ctx, "resumes", fmt.Sprintf("candidate_%d_%s", id, filename), contentType, data)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	candidate.ResumeURL = &url

	// Extraction failure keeps the upload; scoring just stays unavailable
	if text, err := resume.ExtractText(data, contentType); err == nil && text != "" {
		candidate.ResumeText = &text
	}

	if err := u.candidateRepo.Update(ctx, candidate); err != nil {
		return nil, apperror.Internal(err)
	}
	return candidate, nil
}

func (u *candidateUsecase) ListApplications(ctx context.Context, candidateID int64) ([]domain.Application, error) {
	if _, err := u.GetCandidate(ctx, candidateID); err != nil {
		return nil, err
	}
	apps, err := u.applicationRepo.FetchByCandidate(ctx, candidateID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

func (u *candidateUsecase) GetCandidateStats(ctx context.Context) (*domain.CandidateStats, error) {
	stats, err := u.candidateRepo.Stats(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return stats, nil
}

var exportHeaders = []string{"ID", "Full Name", "Email", "Phone", "Location", "Skills", "Experience Years", "Source", "Created At"}

// Export renders all candidates as a spreadsheet. Supported formats are
// "xlsx" and "csv"; the returned string is the content type.
func (u *candidateUsecase) Export(ctx context.Context, format string) ([]byte, string, error) {
	candidates, err := u.candidateRepo.Fetch(ctx, domain.CandidateFilter{Limit: 10000})
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	switch format {
	case "csv":
		return exportCSV(candidates)
	case "", "xlsx":
		return exportXLSX(candidates)
	default:
		return nil, "", apperror.BadRequest("Unsupported export format. Use xlsx or csv.")
	}
}

func exportRow(c domain.Candidate) []string {
	row := []string{
		fmt.Sprintf("%d", c.ID),
		c.FullName,
		c.Email,
		deref(c.Phone),
		deref(c.Location),
		deref(c.Skills),
		"",
		c.Source,
		c.CreatedAt.Format(time.RFC3339),
	}
	if c.ExperienceYears != nil {
		row[6] = fmt.Sprintf("%.1f", *c.ExperienceYears)
	}
	return row
}

func exportCSV(candidates []domain.Candidate) ([]byte, string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeaders); err != nil {
		return nil, "", apperror.Internal(err)
	}
	for _, c := range candidates {
		if err := w.Write(exportRow(c)); err != nil {
			return nil, "", apperror.Internal(err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", apperror.Internal(err)
	}
	return buf.Bytes(), "text/csv", nil
}

func exportXLSX(candidates []domain.Candidate) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Candidates"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, "", apperror.Internal(err)
	}

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, "", apperror.Internal(err)
		}
	}
	for i, c := range candidates {
		for col, value := range exportRow(c) {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, "", apperror.Internal(err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", apperror.Internal(err)
	}
	return buf.Bytes(), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

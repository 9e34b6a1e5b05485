package postgres

import (
	"context"
	"errors"
	"fmt"
	"talentbridge-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

const applicationColumns = `a.id, a.job_id, a.candidate_id, a.status, a.cover_letter, a.match_score,
	a.skills_match, a.experience_match, a.ai_summary, a.ai_recommendation, a.notes, a.applied_at, a.updated_at`

// applicationJoinColumns augments each row with the candidate and job the
// pipeline views render alongside the application itself.
const applicationJoinColumns = applicationColumns + `,
	c.id, c.email, c.full_name, c.phone, c.location, c.linkedin_url, c.resume_url, c.skills, c.experience_years, c.source, c.created_at, c.updated_at,
	j.id, j.title, j.department, j.location, j.job_type, j.status`

func scanApplicationRow(row pgx.Row) (*domain.Application, error) {
	var app domain.Application
	var cand domain.Candidate
	var job domain.Job
	err := row.Scan(
		&app.ID, &app.JobID, &app.CandidateID, &app.Status, &app.CoverLetter, &app.MatchScore,
		&app.SkillsMatch, &app.ExperienceMatch, &app.AISummary, &app.AIRecommendation, &app.Notes,
		&app.AppliedAt, &app.UpdatedAt,
		&cand.ID, &cand.Email, &cand.FullName, &cand.Phone, &cand.Location, &cand.LinkedinURL,
		&cand.ResumeURL, &cand.Skills, &cand.ExperienceYears, &cand.Source, &cand.CreatedAt, &cand.UpdatedAt,
		&job.ID, &job.Title, &job.Department, &job.Location, &job.JobType, &job.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	app.Candidate = &cand
	app.Job = &job
	app.Screenings = []domain.Screening{}
	return &app, nil
}

func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `INSERT INTO applications (job_id, candidate_id, status, cover_letter, match_score, skills_match,
              experience_match, ai_summary, ai_recommendation, notes, applied_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	return r.db.QueryRow(ctx, query,
		app.JobID, app.CandidateID, app.Status, app.CoverLetter, app.MatchScore, app.SkillsMatch,
		app.ExperienceMatch, app.AISummary, app.AIRecommendation, app.Notes, app.AppliedAt, app.UpdatedAt,
	).Scan(&app.ID)
}

func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	query := `SELECT ` + applicationJoinColumns + `
              FROM applications a
              JOIN candidates c ON a.candidate_id = c.id
              JOIN jobs j ON a.job_id = j.id
              WHERE a.id = $1`
	app, err := scanApplicationRow(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	screenings, err := r.fetchScreenings(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	app.Screenings = screenings
	return app, nil
}

func (r *applicationRepo) fetchScreenings(ctx context.Context, applicationID int64) ([]domain.Screening, error) {
	query := `SELECT id, application_id, status, source, scheduled_at, started_at, completed_at, duration_minutes,
              technical_score, communication_score, cultural_fit_score, overall_score, recommendation,
              ai_evaluation, transcript, notes, created_at, updated_at
              FROM screenings WHERE application_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	screenings := []domain.Screening{}
	for rows.Next() {
		var s domain.Screening
		if err := rows.Scan(
			&s.ID, &s.ApplicationID, &s.Status, &s.Source, &s.ScheduledAt, &s.StartedAt, &s.CompletedAt,
			&s.DurationMinutes, &s.TechnicalScore, &s.CommunicationScore, &s.CulturalFitScore,
			&s.OverallScore, &s.Recommendation, &s.AIEvaluation, &s.Transcript, &s.Notes,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		screenings = append(screenings, s)
	}
	return screenings, rows.Err()
}

func (r *applicationRepo) Fetch(ctx context.Context, filter domain.ApplicationFilter) ([]domain.Application, error) {
	query := `SELECT ` + applicationJoinColumns + `
              FROM applications a
              JOIN candidates c ON a.candidate_id = c.id
              JOIN jobs j ON a.job_id = j.id
              WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	if filter.JobID != 0 {
		query += fmt.Sprintf(" AND a.job_id = $%d", argIndex)
		args = append(args, filter.JobID)
		argIndex++
	}
	if filter.CandidateID != 0 {
		query += fmt.Sprintf(" AND a.candidate_id = $%d", argIndex)
		args = append(args, filter.CandidateID)
		argIndex++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND a.status = $%d", argIndex)
		args = append(args, filter.Status)
		argIndex++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (c.full_name ILIKE $%d OR c.email ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}
	if filter.MinScore != nil {
		query += fmt.Sprintf(" AND a.match_score >= $%d", argIndex)
		args = append(args, *filter.MinScore)
		argIndex++
	}

	query += fmt.Sprintf(" ORDER BY a.match_score DESC NULLS LAST, a.applied_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Skip)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []domain.Application{}
	for rows.Next() {
		app, err := scanApplicationRow(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachScreenings(ctx, apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// attachScreenings loads the screenings for every application in the page
// with a single query and distributes them onto the rows.
func (r *applicationRepo) attachScreenings(ctx context.Context, apps []domain.Application) error {
	if len(apps) == 0 {
		return nil
	}

	ids := make([]int64, len(apps))
	index := make(map[int64]int, len(apps))
	for i := range apps {
		ids[i] = apps[i].ID
		index[apps[i].ID] = i
	}

	query := `SELECT id, application_id, status, source, scheduled_at, started_at, completed_at, duration_minutes,
              technical_score, communication_score, cultural_fit_score, overall_score, recommendation,
              ai_evaluation, transcript, notes, created_at, updated_at
              FROM screenings WHERE application_id = ANY($1) ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var s domain.Screening
		if err := rows.Scan(
			&s.ID, &s.ApplicationID, &s.Status, &s.Source, &s.ScheduledAt, &s.StartedAt, &s.CompletedAt,
			&s.DurationMinutes, &s.TechnicalScore, &s.CommunicationScore, &s.CulturalFitScore,
			&s.OverallScore, &s.Recommendation, &s.AIEvaluation, &s.Transcript, &s.Notes,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return err
		}
		if i, ok := index[s.ApplicationID]; ok {
			apps[i].Screenings = append(apps[i].Screenings, s)
		}
	}
	return rows.Err()
}

func (r *applicationRepo) FetchByCandidate(ctx context.Context, candidateID int64) ([]domain.Application, error) {
	return r.Fetch(ctx, domain.ApplicationFilter{CandidateID: candidateID, Limit: 100})
}

func (r *applicationRepo) Exists(ctx context.Context, jobID, candidateID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND candidate_id = $2)`,
		jobID, candidateID,
	).Scan(&exists)
	return exists, err
}

func (r *applicationRepo) Update(ctx context.Context, app *domain.Application) error {
	query := `UPDATE applications SET status = $1, cover_letter = $2, match_score = $3, skills_match = $4,
              experience_match = $5, ai_summary = $6, ai_recommendation = $7, notes = $8, updated_at = NOW()
              WHERE id = $9 RETURNING updated_at`
	err := r.db.QueryRow(ctx, query,
		app.Status, app.CoverLetter, app.MatchScore, app.SkillsMatch,
		app.ExperienceMatch, app.AISummary, app.AIRecommendation, app.Notes, app.ID,
	).Scan(&app.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.db.Exec(ctx, `UPDATE applications SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *applicationRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *applicationRepo) Stats(ctx context.Context, jobID int64) (*domain.ApplicationStats, error) {
	query := `SELECT COUNT(*),
              COUNT(*) FILTER (WHERE status = 'pending'),
              COUNT(*) FILTER (WHERE status = 'screening'),
              COUNT(*) FILTER (WHERE status = 'shortlisted'),
              COUNT(*) FILTER (WHERE status = 'interview'),
              COUNT(*) FILTER (WHERE status = 'offered'),
              COUNT(*) FILTER (WHERE status = 'hired'),
              COUNT(*) FILTER (WHERE status = 'rejected'),
              COALESCE(AVG(match_score) FILTER (WHERE match_score IS NOT NULL), 0)
              FROM applications`
	args := []interface{}{}
	if jobID != 0 {
		query += ` WHERE job_id = $1`
		args = append(args, jobID)
	}

	var stats domain.ApplicationStats
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&stats.Total, &stats.Pending, &stats.Screening, &stats.Shortlisted, &stats.Interview,
		&stats.Offered, &stats.Hired, &stats.Rejected, &stats.AverageMatchScore,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

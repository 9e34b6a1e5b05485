package postgres

import (
	"context"
	"errors"
	"fmt"
	"talentbridge-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type candidateRepo struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepo{db: db}
}

const candidateColumns = `id, email, full_name, phone, location, linkedin_url, portfolio_url, resume_url,
	resume_text, skills, experience_years, education, summary, source, created_at, updated_at`

func scanCandidate(row pgx.Row) (*domain.Candidate, error) {
	var c domain.Candidate
	err := row.Scan(
		&c.ID, &c.Email, &c.FullName, &c.Phone, &c.Location, &c.LinkedinURL, &c.PortfolioURL,
		&c.ResumeURL, &c.ResumeText, &c.Skills, &c.ExperienceYears, &c.Education, &c.Summary,
		&c.Source, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *candidateRepo) Create(ctx context.Context, candidate *domain.Candidate) error {
	query := `INSERT INTO candidates (email, full_name, phone, location, linkedin_url, portfolio_url, resume_url,
              resume_text, skills, experience_years, education, summary, source, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`
	return r.db.QueryRow(ctx, query,
		candidate.Email, candidate.FullName, candidate.Phone, candidate.Location,
		candidate.LinkedinURL, candidate.PortfolioURL, candidate.ResumeURL, candidate.ResumeText,
		candidate.Skills, candidate.ExperienceYears, candidate.Education, candidate.Summary,
		candidate.Source, candidate.CreatedAt, candidate.UpdatedAt,
	).Scan(&candidate.ID)
}

func (r *candidateRepo) GetByID(ctx context.Context, id int64) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`
	return scanCandidate(r.db.QueryRow(ctx, query, id))
}

func (r *candidateRepo) GetByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE LOWER(email) = LOWER($1)`
	return scanCandidate(r.db.QueryRow(ctx, query, email))
}

func (r *candidateRepo) Fetch(ctx context.Context, filter domain.CandidateFilter) ([]domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	if filter.Search != "" {
		query += fmt.Sprintf(" AND (full_name ILIKE $%d OR email ILIKE $%d OR skills ILIKE $%d)", argIndex, argIndex, argIndex)
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}
	if filter.Skills != "" {
		query += fmt.Sprintf(" AND skills ILIKE $%d", argIndex)
		args = append(args, "%"+filter.Skills+"%")
		argIndex++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Skip)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := []domain.Candidate{}
	for rows.Next() {
		var c domain.Candidate
		if err := rows.Scan(
			&c.ID, &c.Email, &c.FullName, &c.Phone, &c.Location, &c.LinkedinURL, &c.PortfolioURL,
			&c.ResumeURL, &c.ResumeText, &c.Skills, &c.ExperienceYears, &c.Education, &c.Summary,
			&c.Source, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

func (r *candidateRepo) Update(ctx context.Context, candidate *domain.Candidate) error {
	query := `UPDATE candidates SET email = $1, full_name = $2, phone = $3, location = $4, linkedin_url = $5,
              portfolio_url = $6, resume_url = $7, resume_text = $8, skills = $9, experience_years = $10,
              education = $11, summary = $12, updated_at = NOW()
              WHERE id = $13 RETURNING updated_at`
	err := r.db.QueryRow(ctx, query,
		candidate.Email, candidate.FullName, candidate.Phone, candidate.Location, candidate.LinkedinURL,
		candidate.PortfolioURL, candidate.ResumeURL, candidate.ResumeText, candidate.Skills,
		candidate.ExperienceYears, candidate.Education, candidate.Summary, candidate.ID,
	).Scan(&candidate.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func (r *candidateRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *candidateRepo) Stats(ctx context.Context) (*domain.CandidateStats, error) {
	stats := &domain.CandidateStats{BySource: map[string]int64{}}

	rows, err := r.db.Query(ctx, `SELECT source, COUNT(*) FROM candidates GROUP BY source`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var source string
		var count int64
		if err := rows.Scan(&source, &count); err != nil {
			return nil, err
		}
		stats.BySource[source] = count
		stats.TotalCandidates += count
	}
	return stats, rows.Err()
}

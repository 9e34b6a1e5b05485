package postgres

import (
	"context"
	"errors"
	"fmt"
	"talentbridge-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

const jobColumns = `id, title, department, location, job_type, experience_level, salary_min, salary_max,
	description, requirements, responsibilities, skills_required, benefits, status, created_by,
	deadline, created_at, updated_at`

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	err := row.Scan(
		&job.ID, &job.Title, &job.Department, &job.Location, &job.JobType, &job.ExperienceLevel,
		&job.SalaryMin, &job.SalaryMax, &job.Description, &job.Requirements, &job.Responsibilities,
		pq.Array(&job.SkillsRequired), &job.Benefits, &job.Status, &job.CreatedBy,
		&job.Deadline, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `INSERT INTO jobs (title, department, location, job_type, experience_level, salary_min, salary_max,
              description, requirements, responsibilities, skills_required, benefits, status, created_by, deadline, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17) RETURNING id`
	return r.db.QueryRow(ctx, query,
		job.Title, job.Department, job.Location, job.JobType, job.ExperienceLevel,
		job.SalaryMin, job.SalaryMax, job.Description, job.Requirements, job.Responsibilities,
		pq.Array(job.SkillsRequired), job.Benefits, job.Status, job.CreatedBy, job.Deadline,
		job.CreatedAt, job.UpdatedAt,
	).Scan(&job.ID)
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	count, err := r.CountApplications(ctx, id)
	if err != nil {
		return nil, err
	}
	job.ApplicationsCount = count
	return job, nil
}

func (r *jobRepo) Fetch(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + `, (SELECT COUNT(*) FROM applications a WHERE a.job_id = jobs.id) AS applications_count
              FROM jobs WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, filter.Status)
		argIndex++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d OR department ILIKE $%d)", argIndex, argIndex, argIndex)
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Skip)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		var job domain.Job
		if err := rows.Scan(
			&job.ID, &job.Title, &job.Department, &job.Location, &job.JobType, &job.ExperienceLevel,
			&job.SalaryMin, &job.SalaryMax, &job.Description, &job.Requirements, &job.Responsibilities,
			pq.Array(&job.SkillsRequired), &job.Benefits, &job.Status, &job.CreatedBy,
			&job.Deadline, &job.CreatedAt, &job.UpdatedAt, &job.ApplicationsCount,
		); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (r *jobRepo) FetchPublicActive(ctx context.Context, search, jobType string, skip, limit int) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE status = 'active'`
	args := []interface{}{}
	argIndex := 1

	if search != "" {
		query += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d OR location ILIKE $%d)", argIndex, argIndex, argIndex)
		args = append(args, "%"+search+"%")
		argIndex++
	}
	if jobType != "" {
		query += fmt.Sprintf(" AND job_type = $%d", argIndex)
		args = append(args, jobType)
		argIndex++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, skip)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		var job domain.Job
		if err := rows.Scan(
			&job.ID, &job.Title, &job.Department, &job.Location, &job.JobType, &job.ExperienceLevel,
			&job.SalaryMin, &job.SalaryMax, &job.Description, &job.Requirements, &job.Responsibilities,
			pq.Array(&job.SkillsRequired), &job.Benefits, &job.Status, &job.CreatedBy,
			&job.Deadline, &job.CreatedAt, &job.UpdatedAt,
		); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	query := `UPDATE jobs SET title = $1, department = $2, location = $3, job_type = $4, experience_level = $5,
              salary_min = $6, salary_max = $7, description = $8, requirements = $9, responsibilities = $10,
              skills_required = $11, benefits = $12, status = $13, deadline = $14, updated_at = NOW()
              WHERE id = $15 RETURNING updated_at`
	err := r.db.QueryRow(ctx, query,
		job.Title, job.Department, job.Location, job.JobType, job.ExperienceLevel,
		job.SalaryMin, job.SalaryMax, job.Description, job.Requirements, job.Responsibilities,
		pq.Array(job.SkillsRequired), job.Benefits, job.Status, job.Deadline, job.ID,
	).Scan(&job.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func (r *jobRepo) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Job, error) {
	query := `UPDATE jobs SET status = $1, updated_at = NOW() WHERE id = $2 RETURNING ` + jobColumns
	return scanJob(r.db.QueryRow(ctx, query, status, id))
}

func (r *jobRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) CountApplications(ctx context.Context, jobID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications WHERE job_id = $1`, jobID).Scan(&count)
	return count, err
}

func (r *jobRepo) Stats(ctx context.Context) (*domain.JobStats, error) {
	query := `SELECT COUNT(*),
              COUNT(*) FILTER (WHERE status = 'active'),
              COUNT(*) FILTER (WHERE status = 'draft'),
              COUNT(*) FILTER (WHERE status = 'closed')
              FROM jobs`
	var stats domain.JobStats
	err := r.db.QueryRow(ctx, query).Scan(&stats.TotalJobs, &stats.ActiveJobs, &stats.DraftJobs, &stats.ClosedJobs)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *jobRepo) PipelineSummary(ctx context.Context, jobID int64) (*domain.PipelineSummary, error) {
	summary := &domain.PipelineSummary{
		JobID:    jobID,
		ByStatus: map[string]int64{},
	}

	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM applications WHERE job_id = $1 GROUP BY status`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		summary.ByStatus[status] = count
		summary.Total += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx,
		`SELECT COALESCE(AVG(match_score), 0) FROM applications WHERE job_id = $1 AND match_score IS NOT NULL`,
		jobID,
	).Scan(&summary.AverageMatchScore)
	if err != nil {
		return nil, err
	}
	return summary, nil
}

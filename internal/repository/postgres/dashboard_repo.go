package postgres

import (
	"context"
	"time"

	"talentbridge-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type dashboardRepo struct {
	db *pgxpool.Pool
}

func NewDashboardRepository(db *pgxpool.Pool) domain.DashboardRepository {
	return &dashboardRepo{db: db}
}

func (r *dashboardRepo) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	query := `SELECT
              (SELECT COUNT(*) FROM jobs),
              (SELECT COUNT(*) FROM jobs WHERE status = 'active'),
              (SELECT COUNT(*) FROM candidates),
              (SELECT COUNT(*) FROM applications),
              (SELECT COUNT(*) FROM applications WHERE status = 'pending'),
              (SELECT COUNT(*) FROM screenings WHERE status = 'completed'),
              (SELECT COUNT(*) FROM applications WHERE status = 'hired'),
              (SELECT AVG(EXTRACT(EPOCH FROM (updated_at - applied_at)) / 86400.0)
               FROM applications WHERE status = 'hired')`
	var stats domain.DashboardStats
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.TotalJobs, &stats.ActiveJobs, &stats.TotalCandidates, &stats.TotalApplications,
		&stats.PendingApplications, &stats.ScreeningsCompleted, &stats.HiredCount, &stats.AvgTimeToHire,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *dashboardRepo) TopJobs(ctx context.Context, limit int) ([]domain.TopJob, error) {
	query := `SELECT j.id, j.title, j.department, j.location, j.status, COUNT(a.id) AS applications_count
              FROM jobs j
              LEFT JOIN applications a ON a.job_id = j.id
              WHERE j.status = 'active'
              GROUP BY j.id
              ORDER BY applications_count DESC, j.created_at DESC
              LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []domain.TopJob{}
	for rows.Next() {
		var j domain.TopJob
		if err := rows.Scan(&j.ID, &j.Title, &j.Department, &j.Location, &j.Status, &j.ApplicationsCount); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (r *dashboardRepo) RecentApplications(ctx context.Context, limit int) ([]domain.RecentApplication, error) {
	query := `SELECT a.id, c.full_name, c.email, j.title, a.status, a.match_score, a.applied_at
              FROM applications a
              JOIN candidates c ON a.candidate_id = c.id
              JOIN jobs j ON a.job_id = j.id
              ORDER BY a.applied_at DESC
              LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []domain.RecentApplication{}
	for rows.Next() {
		var a domain.RecentApplication
		if err := rows.Scan(&a.ID, &a.CandidateName, &a.CandidateEmail, &a.JobTitle, &a.Status, &a.MatchScore, &a.AppliedAt); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

func (r *dashboardRepo) PipelineOverview(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM applications GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	overview := map[string]int64{}
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		overview[status] = count
	}
	return overview, rows.Err()
}

func (r *dashboardRepo) CompletedScreeningsSince(ctx context.Context, since time.Time) ([]domain.Screening, error) {
	query := `SELECT ` + screeningColumns + ` FROM screenings
              WHERE status = 'completed' AND completed_at >= $1
              ORDER BY completed_at DESC`
	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	screenings := []domain.Screening{}
	for rows.Next() {
		s, err := scanScreening(rows)
		if err != nil {
			return nil, err
		}
		screenings = append(screenings, *s)
	}
	return screenings, rows.Err()
}

func (r *dashboardRepo) FunnelCounts(ctx context.Context, jobID int64) (int64, map[string]int64, error) {
	query := `SELECT status, COUNT(*) FROM applications`
	args := []interface{}{}
	if jobID != 0 {
		query += ` WHERE job_id = $1`
		args = append(args, jobID)
	}
	query += ` GROUP BY status`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	var total int64
	byStatus := map[string]int64{}
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return 0, nil, err
		}
		byStatus[status] = count
		total += count
	}
	return total, byStatus, rows.Err()
}

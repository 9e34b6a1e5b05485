package postgres

import (
	"context"
	"errors"
	"talentbridge-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (email, hashed_password, full_name, company_name, role, is_active, is_verified, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	return r.db.QueryRow(ctx, query,
		user.Email, user.HashedPassword, user.FullName, user.CompanyName, user.Role,
		user.IsActive, user.IsVerified, user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT id, email, hashed_password, full_name, company_name, role, avatar_url, is_active, is_verified, created_at, updated_at
              FROM users WHERE id = $1`
	var user domain.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.HashedPassword, &user.FullName, &user.CompanyName, &user.Role,
		&user.AvatarURL, &user.IsActive, &user.IsVerified, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, email, hashed_password, full_name, company_name, role, avatar_url, is_active, is_verified, created_at, updated_at
              FROM users WHERE LOWER(email) = LOWER($1)`
	var user domain.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.HashedPassword, &user.FullName, &user.CompanyName, &user.Role,
		&user.AvatarURL, &user.IsActive, &user.IsVerified, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET email = $1, hashed_password = $2, full_name = $3, company_name = $4,
              role = $5, avatar_url = $6, is_active = $7, is_verified = $8, updated_at = NOW()
              WHERE id = $9 RETURNING updated_at`
	return r.db.QueryRow(ctx, query,
		user.Email, user.HashedPassword, user.FullName, user.CompanyName,
		user.Role, user.AvatarURL, user.IsActive, user.IsVerified, user.ID,
	).Scan(&user.UpdatedAt)
}

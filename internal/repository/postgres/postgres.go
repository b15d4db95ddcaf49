package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobdeck/jobdeck/internal/domain"
	"github.com/jobdeck/jobdeck/internal/repository"
)

// uniqueViolation is the PostgreSQL error code for duplicate unique keys.
const uniqueViolation = "23505"

// Repository implements persistence interfaces on PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// New constructs a Repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ensure Repository satisfies interfaces.
var (
	_ repository.UserRepository = (*Repository)(nil)
	_ repository.JobRepository  = (*Repository)(nil)
)

// CreateUser inserts a user. A duplicate email maps to ErrConflict.
func (r *Repository) CreateUser(ctx context.Context, user *domain.User) error {
	const query = `INSERT INTO users (id, name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, query, user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrConflict
		}
		return err
	}
	return nil
}

// GetUserByEmail fetches a user by email.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT id, name, email, password_hash, created_at FROM users WHERE email = $1`
	row := r.pool.QueryRow(ctx, query, email)
	var u domain.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetUserByID retrieves a user by identifier.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT id, name, email, password_hash, created_at FROM users WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	var u domain.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// CreateJob inserts a job.
func (r *Repository) CreateJob(ctx context.Context, job *domain.Job) error {
	const query = `INSERT INTO jobs (id, company, position, status, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, query, job.ID, job.Company, job.Position, job.Status, job.OwnerID, job.CreatedAt, job.UpdatedAt)
	return err
}

// ListJobsByOwner returns the owner's jobs, newest first.
func (r *Repository) ListJobsByOwner(ctx context.Context, ownerID string) ([]domain.Job, error) {
	const query = `SELECT id, company, position, status, owner_id, created_at, updated_at
		FROM jobs WHERE owner_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]domain.Job, 0)
	for rows.Next() {
		var job domain.Job
		if err := rows.Scan(&job.ID, &job.Company, &job.Position, &job.Status, &job.OwnerID, &job.CreatedAt, &job.UpdatedAt); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// GetJobByIDAndOwner fetches a single owned job.
func (r *Repository) GetJobByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Job, error) {
	const query = `SELECT id, company, position, status, owner_id, created_at, updated_at
		FROM jobs WHERE id = $1 AND owner_id = $2`
	row := r.pool.QueryRow(ctx, query, id, ownerID)
	var job domain.Job
	if err := row.Scan(&job.ID, &job.Company, &job.Position, &job.Status, &job.OwnerID, &job.CreatedAt, &job.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

// UpdateJobByIDAndOwner updates an owned job and returns the stored record.
// An empty status means "keep the stored value".
func (r *Repository) UpdateJobByIDAndOwner(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	const query = `UPDATE jobs SET company = $1, position = $2,
			status = CASE WHEN $3::text = '' THEN status ELSE $3::text END, updated_at = $4
		WHERE id = $5 AND owner_id = $6
		RETURNING id, company, position, status, owner_id, created_at, updated_at`
	row := r.pool.QueryRow(ctx, query, job.Company, job.Position, job.Status, job.UpdatedAt, job.ID, job.OwnerID)
	var updated domain.Job
	if err := row.Scan(&updated.ID, &updated.Company, &updated.Position, &updated.Status, &updated.OwnerID, &updated.CreatedAt, &updated.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

// DeleteJobByIDAndOwner removes an owned job.
func (r *Repository) DeleteJobByIDAndOwner(ctx context.Context, id, ownerID string) error {
	const query = `DELETE FROM jobs WHERE id = $1 AND owner_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CountJobsByOwnerAndStatus aggregates the owner's jobs per status.
func (r *Repository) CountJobsByOwnerAndStatus(ctx context.Context, ownerID string) ([]domain.StatusCount, error) {
	const query = `SELECT status, COUNT(1) FROM jobs WHERE owner_id = $1 GROUP BY status`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]domain.StatusCount, 0)
	for rows.Next() {
		var sc domain.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, sc)
	}
	return counts, rows.Err()
}

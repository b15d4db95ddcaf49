package repository

import (
	"context"

	"github.com/jobdeck/jobdeck/internal/domain"
)

// UserRepository persists accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}

// JobRepository persists job applications. Every owned operation filters by
// owner id in the query itself.
type JobRepository interface {
	CreateJob(ctx context.Context, job *domain.Job) error
	ListJobsByOwner(ctx context.Context, ownerID string) ([]domain.Job, error)
	GetJobByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Job, error)
	UpdateJobByIDAndOwner(ctx context.Context, job *domain.Job) (*domain.Job, error)
	DeleteJobByIDAndOwner(ctx context.Context, id, ownerID string) error
	CountJobsByOwnerAndStatus(ctx context.Context, ownerID string) ([]domain.StatusCount, error)
}

package job

import (
	"context"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/jobdeck/jobdeck/internal/domain"
	"github.com/jobdeck/jobdeck/internal/repository"
	"github.com/jobdeck/jobdeck/internal/validation"
)

// Service implements owner-scoped job workflows. The owner id always comes
// from the authenticated context, never from request payloads.
type Service struct {
	jobs   repository.JobRepository
	logger *slog.Logger
}

// New constructs a Service.
func New(jobs repository.JobRepository, logger *slog.Logger) Service {
	return Service{jobs: jobs, logger: logger}
}

// Input carries the mutable job fields of create and update requests.
type Input struct {
	Company  string           `json:"company"`
	Position string           `json:"position"`
	Status   domain.JobStatus `json:"status,omitempty"`
}

// Create validates input and stores a new job for the owner. Status defaults
// to pending when omitted.
func (s Service) Create(ctx context.Context, ownerID string, in Input) (*domain.Job, error) {
	if err := validation.Job(in.Company, in.Position, in.Status); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = domain.StatusPending
	}
	now := time.Now().UTC()
	job := &domain.Job{
		ID:        uuid.NewString(),
		Company:   strings.TrimSpace(in.Company),
		Position:  strings.TrimSpace(in.Position),
		Status:    status,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.jobs.CreateJob(ctx, job); err != nil {
		return nil, err
	}
	s.logger.Info("job created", "job_id", job.ID, "user_id", ownerID)
	return job, nil
}

// ListByOwner returns the owner's jobs, newest first.
func (s Service) ListByOwner(ctx context.Context, ownerID string) ([]domain.Job, error) {
	return s.jobs.ListJobsByOwner(ctx, ownerID)
}

// GetByIDAndOwner fetches one owned job. A job owned by someone else yields
// the same ErrNotFound as a missing id.
func (s Service) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Job, error) {
	return s.jobs.GetJobByIDAndOwner(ctx, id, ownerID)
}

// Update replaces the mutable fields of an owned job. Company and position
// stay mandatory on update; a status-only change is rejected.
func (s Service) Update(ctx context.Context, id, ownerID string, in Input) (*domain.Job, error) {
	if err := validation.Job(in.Company, in.Position, in.Status); err != nil {
		return nil, err
	}
	// An omitted status keeps the stored one; the repository treats the
	// empty string as "leave unchanged".
	job := &domain.Job{
		ID:        id,
		Company:   strings.TrimSpace(in.Company),
		Position:  strings.TrimSpace(in.Position),
		Status:    in.Status,
		OwnerID:   ownerID,
		UpdatedAt: time.Now().UTC(),
	}
	updated, err := s.jobs.UpdateJobByIDAndOwner(ctx, job)
	if err != nil {
		return nil, err
	}
	s.logger.Info("job updated", "job_id", id, "user_id", ownerID)
	return updated, nil
}

// Delete removes an owned job.
func (s Service) Delete(ctx context.Context, id, ownerID string) error {
	if err := s.jobs.DeleteJobByIDAndOwner(ctx, id, ownerID); err != nil {
		return err
	}
	s.logger.Info("job deleted", "job_id", id, "user_id", ownerID)
	return nil
}

// Stats aggregates the owner's jobs per status, including zero rows for
// statuses without jobs so the dashboard always shows the full set.
func (s Service) Stats(ctx context.Context, ownerID string) ([]domain.StatusCount, error) {
	counts, err := s.jobs.CountJobsByOwnerAndStatus(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	byStatus := make(map[domain.JobStatus]int, len(counts))
	for _, sc := range counts {
		byStatus[sc.Status] = sc.Count
	}
	out := make([]domain.StatusCount, 0, 3)
	for _, status := range domain.Statuses() {
		out = append(out, domain.StatusCount{Status: status, Count: byStatus[status]})
	}
	return out, nil
}

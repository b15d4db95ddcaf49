package job

import (
	"context"
	"io"
	"testing"

	"log/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobdeck/jobdeck/internal/domain"
	"github.com/jobdeck/jobdeck/internal/repository"
)

// stubJobRepo mimics the persistence semantics the service relies on: owner
// scoping on every lookup and "empty status keeps the stored one" on update.
type stubJobRepo struct {
	jobs []domain.Job
}

func (r *stubJobRepo) CreateJob(_ context.Context, job *domain.Job) error {
	r.jobs = append([]domain.Job{*job}, r.jobs...)
	return nil
}

func (r *stubJobRepo) ListJobsByOwner(_ context.Context, ownerID string) ([]domain.Job, error) {
	out := []domain.Job{}
	for _, j := range r.jobs {
		if j.OwnerID == ownerID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (r *stubJobRepo) GetJobByIDAndOwner(_ context.Context, id, ownerID string) (*domain.Job, error) {
	for _, j := range r.jobs {
		if j.ID == id && j.OwnerID == ownerID {
			copied := j
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubJobRepo) UpdateJobByIDAndOwner(_ context.Context, job *domain.Job) (*domain.Job, error) {
	for i := range r.jobs {
		if r.jobs[i].ID == job.ID && r.jobs[i].OwnerID == job.OwnerID {
			r.jobs[i].Company = job.Company
			r.jobs[i].Position = job.Position
			if job.Status != "" {
				r.jobs[i].Status = job.Status
			}
			r.jobs[i].UpdatedAt = job.UpdatedAt
			copied := r.jobs[i]
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubJobRepo) DeleteJobByIDAndOwner(_ context.Context, id, ownerID string) error {
	for i := range r.jobs {
		if r.jobs[i].ID == id && r.jobs[i].OwnerID == ownerID {
			r.jobs = append(r.jobs[:i], r.jobs[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *stubJobRepo) CountJobsByOwnerAndStatus(_ context.Context, ownerID string) ([]domain.StatusCount, error) {
	counts := make(map[domain.JobStatus]int)
	for _, j := range r.jobs {
		if j.OwnerID == ownerID {
			counts[j.Status]++
		}
	}
	out := []domain.StatusCount{}
	for status, n := range counts {
		out = append(out, domain.StatusCount{Status: status, Count: n})
	}
	return out, nil
}

func newTestService(repo repository.JobRepository) Service {
	return New(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreateDefaultsStatusToPending(t *testing.T) {
	svc := newTestService(&stubJobRepo{})

	job, err := svc.Create(context.Background(), "owner-1", Input{Company: "Acme", Position: "Engineer"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, job.Status)
	assert.Equal(t, "owner-1", job.OwnerID)
	assert.NotEmpty(t, job.ID)
	assert.False(t, job.CreatedAt.IsZero())
	assert.Equal(t, job.CreatedAt, job.UpdatedAt)
}

func TestCreateKeepsExplicitStatus(t *testing.T) {
	svc := newTestService(&stubJobRepo{})

	job, err := svc.Create(context.Background(), "owner-1", Input{
		Company:  "Acme",
		Position: "Engineer",
		Status:   domain.StatusInterviewed,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInterviewed, job.Status)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc := newTestService(&stubJobRepo{})

	_, err := svc.Create(context.Background(), "owner-1", Input{Status: "ghosted"})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestListScopedToOwner(t *testing.T) {
	repo := &stubJobRepo{}
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), "owner-1", Input{Company: "Acme", Position: "Engineer"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "owner-2", Input{Company: "Initech", Position: "Analyst"})
	require.NoError(t, err)

	jobs, err := svc.ListByOwner(context.Background(), "owner-1")
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Acme", jobs[0].Company)
}

func TestGetForeignJobIsNotFound(t *testing.T) {
	repo := &stubJobRepo{}
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), "owner-1", Input{Company: "Acme", Position: "Engineer"})
	require.NoError(t, err)

	_, err = svc.GetByIDAndOwner(context.Background(), created.ID, "owner-2")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateOmittedStatusKeepsStoredValue(t *testing.T) {
	repo := &stubJobRepo{}
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), "owner-1", Input{
		Company:  "Acme",
		Position: "Engineer",
		Status:   domain.StatusInterviewed,
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, "owner-1", Input{
		Company:  "Acme Corp",
		Position: "Senior Engineer",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", updated.Company)
	assert.Equal(t, "Senior Engineer", updated.Position)
	assert.Equal(t, domain.StatusInterviewed, updated.Status)
}

func TestUpdateRequiresCompanyAndPosition(t *testing.T) {
	repo := &stubJobRepo{}
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), "owner-1", Input{Company: "Acme", Position: "Engineer"})
	require.NoError(t, err)

	// A status-only change is still rejected.
	_, err = svc.Update(context.Background(), created.ID, "owner-1", Input{Status: domain.StatusDeclined})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestUpdateForeignJobIsNotFound(t *testing.T) {
	repo := &stubJobRepo{}
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), "owner-1", Input{Company: "Acme", Position: "Engineer"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, "owner-2", Input{Company: "X", Position: "Y"})
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteTwiceIsNotFound(t *testing.T) {
	repo := &stubJobRepo{}
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), "owner-1", Input{Company: "Acme", Position: "Engineer"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID, "owner-1"))
	err = svc.Delete(context.Background(), created.ID, "owner-1")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStatsFillsZeroRows(t *testing.T) {
	repo := &stubJobRepo{}
	svc := newTestService(repo)

	for i := 0; i < 2; i++ {
		_, err := svc.Create(context.Background(), "owner-1", Input{Company: "Acme", Position: "Engineer"})
		require.NoError(t, err)
	}
	_, err := svc.Create(context.Background(), "owner-1", Input{
		Company:  "Initech",
		Position: "Analyst",
		Status:   domain.StatusDeclined,
	})
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background(), "owner-1")
	require.NoError(t, err)
	require.Len(t, stats, 3)

	byStatus := make(map[domain.JobStatus]int)
	for _, sc := range stats {
		byStatus[sc.Status] = sc.Count
	}
	assert.Equal(t, 2, byStatus[domain.StatusPending])
	assert.Equal(t, 0, byStatus[domain.StatusInterviewed])
	assert.Equal(t, 1, byStatus[domain.StatusDeclined])
}

package auth

import (
	"context"
	"io"
	"testing"
	"time"

	"log/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobdeck/jobdeck/internal/domain"
	"github.com/jobdeck/jobdeck/internal/repository"
	"github.com/jobdeck/jobdeck/pkg/config"
	jwtpkg "github.com/jobdeck/jobdeck/pkg/jwt"
)

type stubUserRepo struct {
	byEmail map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: make(map[string]*domain.User)}
}

func (r *stubUserRepo) CreateUser(_ context.Context, user *domain.User) error {
	if _, ok := r.byEmail[user.Email]; ok {
		return repository.ErrConflict
	}
	copied := *user
	r.byEmail[user.Email] = &copied
	return nil
}

func (r *stubUserRepo) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *stubUserRepo) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	for _, user := range r.byEmail {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func newTestService(repo repository.UserRepository) Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.APIConfig{JWTSecret: "test-secret", TokenLifetime: time.Hour}
	return New(repo, logger, cfg)
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo)

	user, token, err := svc.Register(context.Background(), "Ada", "Ada@Example.com", "longenough")
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotEmpty(t, token)

	stored, ok := repo.byEmail["ada@example.com"]
	require.True(t, ok, "email must be stored lowercased")
	assert.NotEqual(t, "longenough", string(stored.PasswordHash))
	assert.NotEmpty(t, stored.ID)

	claims, err := jwtpkg.Parse(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "Ada", claims.Name)
}

func TestRegisterRejectsInvalidPayload(t *testing.T) {
	svc := newTestService(newStubUserRepo())

	_, _, err := svc.Register(context.Background(), "", "", "")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo)

	_, _, err := svc.Register(context.Background(), "Ada", "ada@example.com", "longenough")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "Other", "ada@example.com", "longenough")
	require.ErrorIs(t, err, repository.ErrConflict)
}

func TestLoginSucceedsWithCorrectPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo)

	registered, _, err := svc.Register(context.Background(), "Ada", "ada@example.com", "longenough")
	require.NoError(t, err)

	user, token, err := svc.Login(context.Background(), "ada@example.com", "longenough")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	require.NotEmpty(t, token)

	claims, err := svc.Authorize(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo)

	_, _, err := svc.Register(context.Background(), "Ada", "ada@example.com", "longenough")
	require.NoError(t, err)

	_, _, wrongPassword := svc.Login(context.Background(), "ada@example.com", "wrongpassword")
	_, _, unknownEmail := svc.Login(context.Background(), "nobody@example.com", "longenough")
	require.ErrorIs(t, wrongPassword, domain.ErrInvalidCredentials)
	require.ErrorIs(t, unknownEmail, domain.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLoginRequiresBothFields(t *testing.T) {
	svc := newTestService(newStubUserRepo())

	_, _, err := svc.Login(context.Background(), "", "")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestAuthorizeRejectsBadTokens(t *testing.T) {
	svc := newTestService(newStubUserRepo())

	_, err := svc.Authorize("")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Authorize("not.a.token")
	require.Error(t, err)

	// Token signed with a different secret must be rejected.
	foreign, err := jwtpkg.GenerateToken("user-1", "Ada", "other-secret", time.Hour)
	require.NoError(t, err)
	_, err = svc.Authorize(foreign)
	require.Error(t, err)
}

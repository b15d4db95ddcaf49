package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobdeck/jobdeck/internal/domain"
)

func TestRegistrationValid(t *testing.T) {
	require.NoError(t, Registration("Ada", "ada@example.com", "longenough"))
}

func TestRegistrationViolations(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		password string
		want     string
	}{
		{"missing name", "", "ada@example.com", "longenough", "please provide the name"},
		{"short name", "ab", "ada@example.com", "longenough", "name must be between 3 and 50 characters"},
		{"long name", strings.Repeat("a", 51), "ada@example.com", "longenough", "name must be between 3 and 50 characters"},
		{"missing email", "Ada", "", "longenough", "please provide the email"},
		{"bad email", "Ada", "not-an-email", "longenough", "please provide a valid email"},
		{"bad email no tld", "Ada", "ada@example", "longenough", "please provide a valid email"},
		{"missing password", "Ada", "ada@example.com", "", "please provide the password"},
		{"short password", "Ada", "ada@example.com", "short", "password must be at least 8 characters"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Registration(tc.userName, tc.email, tc.password)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestRegistrationAggregatesAllViolations(t *testing.T) {
	err := Registration("", "", "")
	require.Error(t, err)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 3)
}

func TestLogin(t *testing.T) {
	require.NoError(t, Login("ada@example.com", "whatever"))

	err := Login("", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "please provide the email")
	assert.Contains(t, err.Error(), "please provide the password")
}

func TestJobValid(t *testing.T) {
	require.NoError(t, Job("Acme", "Engineer", ""))
	require.NoError(t, Job("Acme", "Engineer", domain.StatusDeclined))
}

func TestJobViolations(t *testing.T) {
	tests := []struct {
		name     string
		company  string
		position string
		status   domain.JobStatus
		want     string
	}{
		{"missing company", "", "Engineer", "", "please provide the company name"},
		{"long company", strings.Repeat("x", 51), "Engineer", "", "company name must be at most 50 characters"},
		{"missing position", "Acme", "", "", "please provide the position"},
		{"unknown status", "Acme", "Engineer", "ghosted", "status must be one of pending, interviewed or declined"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Job(tc.company, tc.position, tc.status)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

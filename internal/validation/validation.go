// Package validation holds the pure field constraints, kept separate from
// persistence so they are testable without a database.
package validation

import (
	"regexp"
	"strings"

	"github.com/jobdeck/jobdeck/internal/domain"
)

const (
	NameMinLen     = 3
	NameMaxLen     = 50
	PasswordMinLen = 8
	CompanyMaxLen  = 50
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Registration checks the register payload and returns a ValidationError
// aggregating every violation.
func Registration(name, email, password string) error {
	var violations []string
	name = strings.TrimSpace(name)
	if name == "" {
		violations = append(violations, "please provide the name")
	} else if len(name) < NameMinLen || len(name) > NameMaxLen {
		violations = append(violations, "name must be between 3 and 50 characters")
	}
	if v := emailViolation(email); v != "" {
		violations = append(violations, v)
	}
	if password == "" {
		violations = append(violations, "please provide the password")
	} else if len(password) < PasswordMinLen {
		violations = append(violations, "password must be at least 8 characters")
	}
	if len(violations) > 0 {
		return domain.NewValidationError(violations...)
	}
	return nil
}

// Login checks that both credentials are present.
func Login(email, password string) error {
	var violations []string
	if strings.TrimSpace(email) == "" {
		violations = append(violations, "please provide the email")
	}
	if strings.TrimSpace(password) == "" {
		violations = append(violations, "please provide the password")
	}
	if len(violations) > 0 {
		return domain.NewValidationError(violations...)
	}
	return nil
}

// Job checks company, position and status. Status may be empty; callers
// default it to pending. Used for both create and update since the update
// operation requires the same mandatory fields.
func Job(company, position string, status domain.JobStatus) error {
	var violations []string
	company = strings.TrimSpace(company)
	if company == "" {
		violations = append(violations, "please provide the company name")
	} else if len(company) > CompanyMaxLen {
		violations = append(violations, "company name must be at most 50 characters")
	}
	if strings.TrimSpace(position) == "" {
		violations = append(violations, "please provide the position")
	}
	if status != "" && !domain.ValidStatus(status) {
		violations = append(violations, "status must be one of pending, interviewed or declined")
	}
	if len(violations) > 0 {
		return domain.NewValidationError(violations...)
	}
	return nil
}

func emailViolation(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return "please provide the email"
	}
	if !emailPattern.MatchString(email) {
		return "please provide a valid email"
	}
	return ""
}

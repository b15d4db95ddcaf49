package domain

import "time"

// JobStatus enumerates the tracked application states.
type JobStatus string

const (
	StatusPending     JobStatus = "pending"
	StatusInterviewed JobStatus = "interviewed"
	StatusDeclined    JobStatus = "declined"
)

// ValidStatus reports whether s is one of the enumerated job statuses.
func ValidStatus(s JobStatus) bool {
	switch s {
	case StatusPending, StatusInterviewed, StatusDeclined:
		return true
	}
	return false
}

// Statuses lists the enumerated job statuses in display order.
func Statuses() []JobStatus {
	return []JobStatus{StatusPending, StatusInterviewed, StatusDeclined}
}

// Job is a single tracked application. OwnerID is set at creation and never
// changes; every read and mutation is filtered by it.
type Job struct {
	ID        string    `json:"id"`
	Company   string    `json:"company"`
	Position  string    `json:"position"`
	Status    JobStatus `json:"status"`
	OwnerID   string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StatusCount pairs a status with the number of owned jobs in it.
type StatusCount struct {
	Status JobStatus `json:"status"`
	Count  int       `json:"count"`
}

package model

import "strings"

// ApplicationStatus tracks where a job application sits in the review flow
type ApplicationStatus string

const (
	// StatusApplied is the initial status set when the application is created
	StatusApplied ApplicationStatus = "applied"
	// StatusReviewed marks an application the employer has looked at
	StatusReviewed ApplicationStatus = "reviewed"
	// StatusAccepted is terminal
	StatusAccepted ApplicationStatus = "accepted"
	// StatusRejected is terminal
	StatusRejected ApplicationStatus = "rejected"
)

// IsTerminal reports whether the status ends the review flow
func (s ApplicationStatus) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// IsValidStatus checks the status against the stored enum
func IsValidStatus(s ApplicationStatus) bool {
	switch s {
	case StatusApplied, StatusReviewed, StatusAccepted, StatusRejected:
		return true
	default:
		return false
	}
}

// ParseStatus normalizes case-insensitive input to a lowercase status.
// Only statuses an employer may set through the API are accepted here;
// "reviewed" exists in storage but is not a settable target.
func ParseStatus(raw string) (ApplicationStatus, bool) {
	s := ApplicationStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case StatusApplied, StatusAccepted, StatusRejected:
		return s, true
	default:
		return "", false
	}
}

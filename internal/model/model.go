// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes; the only behavior is projection helpers.
package model

import "time"

// ClosingDateLayout is how closing dates travel in JSON snapshots and CSV exports.
const ClosingDateLayout = "2006-01-02"

// Role status values.
const (
	RoleStatusOpen   = "open"
	RoleStatusClosed = "closed"
)

// Application status values.
const (
	ApplicationPending  = "pending"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

// JobRole is a vacancy as served by the backend API.
type JobRole struct {
	ID               int64     `json:"id"`
	RoleName         string    `json:"role_name"`
	Location         string    `json:"location"`
	Capability       string    `json:"capability"`
	Band             string    `json:"band"`
	ClosingDate      time.Time `json:"closing_date"`
	Status           string    `json:"status"` // open, closed
	Description      string    `json:"description,omitempty"`
	Responsibilities string    `json:"responsibilities,omitempty"`
	SharepointURL    string    `json:"sharepoint_url,omitempty"`
	OpenPositions    int       `json:"open_positions"`
}

// IsOpen reports whether the role still accepts applications at the given moment.
func (r JobRole) IsOpen(now time.Time) bool {
	if r.Status != RoleStatusOpen {
		return false
	}
	if r.ClosingDate.IsZero() {
		return true
	}
	// closing date is inclusive: applications are accepted until the end of that day
	return now.Before(r.ClosingDate.AddDate(0, 0, 1))
}

// Record projects the role onto the flat shape used by exports.
func (r JobRole) Record() JobRoleRecord {
	closing := ""
	if !r.ClosingDate.IsZero() {
		closing = r.ClosingDate.Format(ClosingDateLayout)
	}
	return JobRoleRecord{
		ID:          r.ID,
		RoleName:    r.RoleName,
		Location:    r.Location,
		Capability:  r.Capability,
		Band:        r.Band,
		ClosingDate: closing,
		Status:      r.Status,
	}
}

// JobRoleRecord is the read-only export projection of a JobRole.
type JobRoleRecord struct {
	ID          int64
	RoleName    string
	Location    string
	Capability  string
	Band        string
	ClosingDate string
	Status      string
}

// Application is a candidate's submission against a job role.
type Application struct {
	ID        int64     `json:"id"`
	JobRoleID int64     `json:"job_role_id"`
	Applicant string    `json:"applicant"`
	Email     string    `json:"email"`
	Status    string    `json:"status"` // pending, accepted, rejected
	ResumeKey string    `json:"resume_key,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// FilterOptions lists the distinct selector values offered on the roles page.
type FilterOptions struct {
	Locations    []string `json:"locations"`
	Bands        []string `json:"bands"`
	Capabilities []string `json:"capabilities"`
}

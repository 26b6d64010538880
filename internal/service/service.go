// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"
	"io"

	"github.com/maxviazov/job-portal/internal/listfilter"
	"github.com/maxviazov/job-portal/internal/model"
	"github.com/maxviazov/job-portal/internal/storage"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// ErrRoleClosed is returned when applying to a role past its closing date or not open.
var ErrRoleClosed = errors.New("role is not accepting applications")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// newInvalidInput builds an aggregated validation error if any field errors are present.
func newInvalidInput(fe []FieldError) error {
	if len(fe) == 0 { // protective case
		return nil
	}
	return &invalidInputError{fields: fe}
}

// InvalidField builds a single-field validation error for callers outside the service layer.
func InvalidField(field, message string) error {
	return newInvalidInput([]FieldError{{Field: field, Message: message}})
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	var v feIface
	if errors.As(err, &v) && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// JobRolePage is one validated page of roles plus the numbers a pager needs.
type JobRolePage struct {
	Items      []model.JobRole `json:"items"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	Total      int             `json:"total"`
	TotalPages int             `json:"total_pages"`
}

// JobRoleInput is the admin payload for creating or updating a role.
type JobRoleInput struct {
	RoleName         string `json:"role_name" validate:"required,min=2,max=120"`
	Location         string `json:"location" validate:"required,max=80"`
	Capability       string `json:"capability" validate:"required,max=80"`
	Band             string `json:"band" validate:"required,max=80"`
	ClosingDate      string `json:"closing_date" validate:"required,datetime=2006-01-02"`
	Status           string `json:"status" validate:"omitempty,oneof=open closed"`
	Description      string `json:"description" validate:"max=5000"`
	Responsibilities string `json:"responsibilities" validate:"max=5000"`
	SharepointURL    string `json:"sharepoint_url" validate:"omitempty,url"`
	OpenPositions    int    `json:"open_positions" validate:"gte=0,lte=1000"`
}

// ApplyInput carries an applicant's details and their résumé upload.
type ApplyInput struct {
	Applicant  string    `json:"applicant" validate:"required,min=2,max=100"`
	Email      string    `json:"email" validate:"required,email"`
	ResumeName string    `json:"-"`
	Resume     io.Reader `json:"-"`
	ResumeSize int64     `json:"-"`
}

// JobRoleService defines job-role use cases.
type JobRoleService interface {
	// List validates raw page/limit query values before touching the repository.
	List(ctx context.Context, pageStr, limitStr string, crit listfilter.Criteria) (JobRolePage, error)
	Get(ctx context.Context, id int64) (model.JobRole, error)
	Create(ctx context.Context, in JobRoleInput) (model.JobRole, error)
	Update(ctx context.Context, id int64, in JobRoleInput) (model.JobRole, error)
	Delete(ctx context.Context, id int64) error
	FilterOptions(ctx context.Context) (model.FilterOptions, error)
}

// ApplicationService defines application use cases.
type ApplicationService interface {
	Apply(ctx context.Context, roleID int64, in ApplyInput) (model.Application, error)
	ListForRole(ctx context.Context, roleID int64) ([]model.Application, error)
	Accept(ctx context.Context, id int64) (model.Application, error)
	Reject(ctx context.Context, id int64) (model.Application, error)
}

// ExportService produces downloadable exports.
type ExportService interface {
	// JobRolesCSV returns a suggested filename and the CSV body for every role matching crit.
	JobRolesCSV(ctx context.Context, crit listfilter.Criteria) (filename, body string, err error)
}

// ResumeStore persists résumé uploads.
type ResumeStore interface {
	Put(ctx context.Context, filename string, r io.Reader, size int64) (storage.Stored, error)
}

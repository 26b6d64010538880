package repository

import (
	"context"

	"github.com/maxviazov/job-portal/internal/listfilter"
	"github.com/maxviazov/job-portal/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from the upstream implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// JobRoleRepository declares the job-role operations the portal needs from its data source.
// I return domain models and surface domain errors from errors.go rather than HTTP codes.
type JobRoleRepository interface {
	// List returns one window of roles matching f, plus the total number of matches.
	List(ctx context.Context, p Page, f listfilter.Criteria) (PageResult[model.JobRole], error)
	GetByID(ctx context.Context, id int64) (model.JobRole, error)
	Create(ctx context.Context, r model.JobRole) (model.JobRole, error)
	Update(ctx context.Context, r model.JobRole) (model.JobRole, error)
	Delete(ctx context.Context, id int64) error
	// FilterOptions lists the distinct locations, bands and capabilities across all roles.
	FilterOptions(ctx context.Context) (model.FilterOptions, error)
}

// ApplicationRepository declares operations for applications against a role.
type ApplicationRepository interface {
	Create(ctx context.Context, a model.Application) (model.Application, error)
	ListByRole(ctx context.Context, roleID int64) ([]model.Application, error)
	SetStatus(ctx context.Context, id int64, status string) (model.Application, error)
}

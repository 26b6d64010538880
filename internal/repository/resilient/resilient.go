// Package resilient reads job roles from the backend and degrades to the local snapshot
// when the backend is unreachable. Writes never fall back.
package resilient

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/maxviazov/job-portal/internal/listfilter"
	"github.com/maxviazov/job-portal/internal/model"
	"github.com/maxviazov/job-portal/internal/repository"
)

type JobRoleRepo struct {
	primary  repository.JobRoleRepository
	fallback repository.JobRoleRepository
	log      zerolog.Logger
}

var _ repository.JobRoleRepository = (*JobRoleRepo)(nil)

// New wraps primary. A nil fallback turns the wrapper into a pass-through.
func New(primary, fallback repository.JobRoleRepository, logger zerolog.Logger) *JobRoleRepo {
	return &JobRoleRepo{
		primary:  primary,
		fallback: fallback,
		log:      logger.With().Str("module", "repository").Str("component", "resilient").Logger(),
	}
}

func (r *JobRoleRepo) degrade(op string, err error) bool {
	if r.fallback == nil || !errors.Is(err, repository.ErrUnavailable) {
		return false
	}
	r.log.Warn().Err(err).Str("op", op).Msg("backend unavailable, serving fallback data")
	return true
}

func (r *JobRoleRepo) List(ctx context.Context, p repository.Page, f listfilter.Criteria) (repository.PageResult[model.JobRole], error) {
	res, err := r.primary.List(ctx, p, f)
	if err != nil && r.degrade("list", err) {
		return r.fallback.List(ctx, p, f)
	}
	return res, err
}

func (r *JobRoleRepo) GetByID(ctx context.Context, id int64) (model.JobRole, error) {
	role, err := r.primary.GetByID(ctx, id)
	if err != nil && r.degrade("get", err) {
		return r.fallback.GetByID(ctx, id)
	}
	return role, err
}

func (r *JobRoleRepo) FilterOptions(ctx context.Context) (model.FilterOptions, error) {
	opts, err := r.primary.FilterOptions(ctx)
	if err != nil && r.degrade("filter_options", err) {
		return r.fallback.FilterOptions(ctx)
	}
	return opts, err
}

func (r *JobRoleRepo) Create(ctx context.Context, role model.JobRole) (model.JobRole, error) {
	return r.primary.Create(ctx, role)
}

func (r *JobRoleRepo) Update(ctx context.Context, role model.JobRole) (model.JobRole, error) {
	return r.primary.Update(ctx, role)
}

func (r *JobRoleRepo) Delete(ctx context.Context, id int64) error {
	return r.primary.Delete(ctx, id)
}

// Ping reports ready when either source can serve reads.
func (r *JobRoleRepo) Ping(ctx context.Context) error {
	perr := ping(ctx, r.primary)
	if perr == nil || r.fallback == nil {
		return perr
	}
	if ferr := ping(ctx, r.fallback); ferr == nil {
		r.log.Warn().Err(perr).Msg("backend not ready, fallback available")
		return nil
	}
	return perr
}

func ping(ctx context.Context, repo repository.JobRoleRepository) error {
	if p, ok := repo.(repository.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

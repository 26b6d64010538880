package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxviazov/job-portal/internal/listfilter"
	"github.com/maxviazov/job-portal/internal/model"
	"github.com/maxviazov/job-portal/internal/repository"
)

const (
	DefaultTTL = 5 * time.Minute

	filtersKey = "job-roles:filters"
)

func roleKey(id int64) string { return "job-roles:" + strconv.FormatInt(id, 10) }

// JobRoleRepo caches single-role lookups and filter options in front of another repository.
// Lists are not cached; writes invalidate the affected keys. Cache failures are logged and
// never fail the request.
type JobRoleRepo struct {
	next  repository.JobRoleRepository
	cache Cache
	ttl   time.Duration
	log   zerolog.Logger
}

var _ repository.JobRoleRepository = (*JobRoleRepo)(nil)

func NewJobRoleRepo(next repository.JobRoleRepository, c Cache, ttl time.Duration, logger zerolog.Logger) *JobRoleRepo {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &JobRoleRepo{
		next:  next,
		cache: c,
		ttl:   ttl,
		log:   logger.With().Str("module", "repository").Str("component", "cache").Logger(),
	}
}

func (r *JobRoleRepo) List(ctx context.Context, p repository.Page, f listfilter.Criteria) (repository.PageResult[model.JobRole], error) {
	return r.next.List(ctx, p, f)
}

func (r *JobRoleRepo) GetByID(ctx context.Context, id int64) (model.JobRole, error) {
	var role model.JobRole
	if r.load(ctx, roleKey(id), &role) {
		return role, nil
	}
	role, err := r.next.GetByID(ctx, id)
	if err != nil {
		return model.JobRole{}, err
	}
	r.store(ctx, roleKey(id), role)
	return role, nil
}

func (r *JobRoleRepo) FilterOptions(ctx context.Context) (model.FilterOptions, error) {
	var opts model.FilterOptions
	if r.load(ctx, filtersKey, &opts) {
		return opts, nil
	}
	opts, err := r.next.FilterOptions(ctx)
	if err != nil {
		return model.FilterOptions{}, err
	}
	r.store(ctx, filtersKey, opts)
	return opts, nil
}

func (r *JobRoleRepo) Create(ctx context.Context, role model.JobRole) (model.JobRole, error) {
	out, err := r.next.Create(ctx, role)
	if err != nil {
		return out, err
	}
	r.invalidate(ctx, filtersKey)
	return out, nil
}

func (r *JobRoleRepo) Update(ctx context.Context, role model.JobRole) (model.JobRole, error) {
	out, err := r.next.Update(ctx, role)
	if err != nil {
		return out, err
	}
	r.invalidate(ctx, roleKey(role.ID), filtersKey)
	return out, nil
}

func (r *JobRoleRepo) Delete(ctx context.Context, id int64) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, roleKey(id), filtersKey)
	return nil
}

// Ping delegates to the wrapped repository when it can be pinged.
func (r *JobRoleRepo) Ping(ctx context.Context) error {
	if p, ok := r.next.(repository.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (r *JobRoleRepo) load(ctx context.Context, key string, dst any) bool {
	b, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("cache entry undecodable, ignoring")
		return false
	}
	return true
}

func (r *JobRoleRepo) store(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, key, b, r.ttl); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

func (r *JobRoleRepo) invalidate(ctx context.Context, keys ...string) {
	if err := r.cache.Delete(ctx, keys...); err != nil {
		r.log.Warn().Err(err).Strs("keys", keys).Msg("cache invalidation failed")
	}
}

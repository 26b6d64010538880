package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/maxviazov/job-portal/internal/listfilter"
	"github.com/maxviazov/job-portal/internal/model"
	"github.com/maxviazov/job-portal/internal/repository"
)

type JobRoleRepo struct {
	c *Client
}

func NewJobRoleRepo(c *Client) *JobRoleRepo { return &JobRoleRepo{c: c} }

var _ repository.JobRoleRepository = (*JobRoleRepo)(nil)

type listResponse struct {
	Items []model.JobRole `json:"items"`
	Total int             `json:"total"`
}

func (r *JobRoleRepo) List(ctx context.Context, p repository.Page, f listfilter.Criteria) (repository.PageResult[model.JobRole], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Number()))
	q.Set("limit", strconv.Itoa(p.Limit))
	if f.Query != "" {
		q.Set("q", f.Query)
	}
	if f.Location != "" {
		q.Set("location", f.Location)
	}
	if f.Band != "" {
		q.Set("band", f.Band)
	}
	var out listResponse
	if err := r.c.do(ctx, http.MethodGet, "/api/job-roles", q, nil, &out); err != nil {
		return repository.PageResult[model.JobRole]{}, err
	}
	if out.Items == nil {
		out.Items = []model.JobRole{}
	}
	return repository.PageResult[model.JobRole]{Items: out.Items, Total: out.Total}, nil
}

func (r *JobRoleRepo) GetByID(ctx context.Context, id int64) (model.JobRole, error) {
	var out model.JobRole
	err := r.c.do(ctx, http.MethodGet, rolePath(id), nil, nil, &out)
	return out, err
}

func (r *JobRoleRepo) Create(ctx context.Context, role model.JobRole) (model.JobRole, error) {
	var out model.JobRole
	err := r.c.do(ctx, http.MethodPost, "/api/job-roles", nil, role, &out)
	return out, err
}

func (r *JobRoleRepo) Update(ctx context.Context, role model.JobRole) (model.JobRole, error) {
	var out model.JobRole
	err := r.c.do(ctx, http.MethodPut, rolePath(role.ID), nil, role, &out)
	return out, err
}

func (r *JobRoleRepo) Delete(ctx context.Context, id int64) error {
	return r.c.do(ctx, http.MethodDelete, rolePath(id), nil, nil, nil)
}

func (r *JobRoleRepo) FilterOptions(ctx context.Context) (model.FilterOptions, error) {
	var out model.FilterOptions
	err := r.c.do(ctx, http.MethodGet, "/api/job-roles/filters", nil, nil, &out)
	return out, err
}

// Ping reports whether the backend itself is reachable.
func (r *JobRoleRepo) Ping(ctx context.Context) error { return r.c.Ping(ctx) }

func rolePath(id int64) string {
	return "/api/job-roles/" + strconv.FormatInt(id, 10)
}

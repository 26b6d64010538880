package backend

import (
	"context"
	"net/http"
	"strconv"

	"github.com/maxviazov/job-portal/internal/model"
	"github.com/maxviazov/job-portal/internal/repository"
)

type ApplicationRepo struct {
	c *Client
}

func NewApplicationRepo(c *Client) *ApplicationRepo { return &ApplicationRepo{c: c} }

var _ repository.ApplicationRepository = (*ApplicationRepo)(nil)

func (r *ApplicationRepo) Create(ctx context.Context, a model.Application) (model.Application, error) {
	var out model.Application
	err := r.c.do(ctx, http.MethodPost, rolePath(a.JobRoleID)+"/applications", nil, a, &out)
	return out, err
}

func (r *ApplicationRepo) ListByRole(ctx context.Context, roleID int64) ([]model.Application, error) {
	var out []model.Application
	if err := r.c.do(ctx, http.MethodGet, rolePath(roleID)+"/applications", nil, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Application{}
	}
	return out, nil
}

type statusRequest struct {
	Status string `json:"status"`
}

func (r *ApplicationRepo) SetStatus(ctx context.Context, id int64, status string) (model.Application, error) {
	var out model.Application
	path := "/api/applications/" + strconv.FormatInt(id, 10) + "/status"
	err := r.c.do(ctx, http.MethodPut, path, nil, statusRequest{Status: status}, &out)
	return out, err
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxviazov/job-portal/internal/listfilter"
	"github.com/maxviazov/job-portal/internal/model"
	"github.com/maxviazov/job-portal/internal/pagination"
	"github.com/maxviazov/job-portal/internal/repository"
)

// jobRoleService holds job-role use-case logic: validation + orchestration, no transport details.
type jobRoleService struct {
	repo repository.JobRoleRepository
	log  zerolog.Logger
}

func NewJobRoleService(repo repository.JobRoleRepository, logger zerolog.Logger) JobRoleService {
	l := logger.With().Str("module", "service").Str("component", "job_role").Logger()
	return &jobRoleService{repo: repo, log: l}
}

func (s *jobRoleService) List(ctx context.Context, pageStr, limitStr string, crit listfilter.Criteria) (JobRolePage, error) {
	res := pagination.Validate(pageStr, limitStr)
	if !res.Valid {
		s.log.Debug().Str("page_raw", pageStr).Str("limit_raw", limitStr).Str("reason", res.Error).Msg("pagination rejected")
		return JobRolePage{}, paginationError(res)
	}
	crit = normalizeCriteria(crit)

	out, err := s.repo.List(ctx, repository.PageFrom(res), crit)
	if err != nil {
		s.log.Error().Err(err).Int("page", res.Page).Int("limit", res.Limit).Msg("list job roles failed")
		return JobRolePage{}, err
	}
	items := out.Items
	if items == nil {
		items = []model.JobRole{}
	}
	return JobRolePage{
		Items:      items,
		Page:       res.Page,
		Limit:      res.Limit,
		Total:      out.Total,
		TotalPages: pagination.TotalPages(out.Total, res.Limit),
	}, nil
}

func (s *jobRoleService) Get(ctx context.Context, id int64) (model.JobRole, error) {
	if id <= 0 {
		return model.JobRole{}, idError("id")
	}
	return s.repo.GetByID(ctx, id)
}

func (s *jobRoleService) Create(ctx context.Context, in JobRoleInput) (model.JobRole, error) {
	start := time.Now()
	role, err := s.toModel(in)
	if err != nil {
		return model.JobRole{}, err
	}
	out, err := s.repo.Create(ctx, role)
	if err != nil {
		// Repository surfaces domain-level errors already, do not wrap.
		s.log.Error().Err(err).Str("role_name", role.RoleName).Msg("create job role failed")
		return model.JobRole{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("job_role_id", out.ID).Msg("job role created")
	return out, nil
}

func (s *jobRoleService) Update(ctx context.Context, id int64, in JobRoleInput) (model.JobRole, error) {
	if id <= 0 {
		return model.JobRole{}, idError("id")
	}
	role, err := s.toModel(in)
	if err != nil {
		return model.JobRole{}, err
	}
	role.ID = id
	out, err := s.repo.Update(ctx, role)
	if err != nil {
		s.log.Error().Err(err).Int64("job_role_id", id).Msg("update job role failed")
		return model.JobRole{}, err
	}
	s.log.Info().Int64("job_role_id", id).Msg("job role updated")
	return out, nil
}

func (s *jobRoleService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return idError("id")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error().Err(err).Int64("job_role_id", id).Msg("delete job role failed")
		return err
	}
	s.log.Info().Int64("job_role_id", id).Msg("job role deleted")
	return nil
}

func (s *jobRoleService) FilterOptions(ctx context.Context) (model.FilterOptions, error) {
	opts, err := s.repo.FilterOptions(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("load filter options failed")
		return model.FilterOptions{}, err
	}
	return opts, nil
}

// toModel trims and validates admin input.
func (s *jobRoleService) toModel(in JobRoleInput) (model.JobRole, error) {
	in.RoleName = strings.TrimSpace(in.RoleName)
	in.Location = strings.TrimSpace(in.Location)
	in.Capability = strings.TrimSpace(in.Capability)
	in.Band = strings.TrimSpace(in.Band)
	in.ClosingDate = strings.TrimSpace(in.ClosingDate)
	in.Status = strings.ToLower(strings.TrimSpace(in.Status))
	if in.Status == "" {
		in.Status = model.RoleStatusOpen
	}

	if ferrs := validateStruct(in); len(ferrs) > 0 {
		s.log.Debug().Interface("field_errors", ferrs).Msg("job role validation failed")
		return model.JobRole{}, newInvalidInput(ferrs)
	}
	closing, _ := time.Parse(model.ClosingDateLayout, in.ClosingDate) // format already validated

	return model.JobRole{
		RoleName:         in.RoleName,
		Location:         in.Location,
		Capability:       in.Capability,
		Band:             in.Band,
		ClosingDate:      closing,
		Status:           in.Status,
		Description:      in.Description,
		Responsibilities: in.Responsibilities,
		SharepointURL:    in.SharepointURL,
		OpenPositions:    in.OpenPositions,
	}, nil
}

// normalizeCriteria trims selector values; the query keeps inner spacing.
func normalizeCriteria(c listfilter.Criteria) listfilter.Criteria {
	return listfilter.Criteria{
		Query:    strings.TrimSpace(c.Query),
		Location: strings.TrimSpace(c.Location),
		Band:     strings.TrimSpace(c.Band),
	}
}

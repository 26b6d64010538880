package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/maxviazov/job-portal/internal/model"
	"github.com/maxviazov/job-portal/internal/repository"
	"github.com/maxviazov/job-portal/internal/storage"
)

type applicationService struct {
	roles   repository.JobRoleRepository
	apps    repository.ApplicationRepository
	resumes ResumeStore
	log     zerolog.Logger
}

// NewApplicationService wires application use cases. A nil resume store disables applying.
func NewApplicationService(roles repository.JobRoleRepository, apps repository.ApplicationRepository, resumes ResumeStore, logger zerolog.Logger) ApplicationService {
	l := logger.With().Str("module", "service").Str("component", "application").Logger()
	return &applicationService{roles: roles, apps: apps, resumes: resumes, log: l}
}

func (s *applicationService) Apply(ctx context.Context, roleID int64, in ApplyInput) (model.Application, error) {
	start := time.Now()
	in.Applicant = strings.TrimSpace(in.Applicant)
	in.Email = strings.TrimSpace(in.Email)

	var ferrs []FieldError
	if roleID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "role_id", Message: "must be > 0"})
	}
	ferrs = append(ferrs, validateStruct(in)...)
	if in.Resume == nil || in.ResumeSize <= 0 {
		ferrs = append(ferrs, FieldError{Field: "resume", Message: "must not be empty"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("application validation failed")
		return model.Application{}, err
	}

	role, err := s.roles.GetByID(ctx, roleID)
	if err != nil {
		return model.Application{}, err
	}
	if !role.IsOpen(time.Now()) {
		return model.Application{}, ErrRoleClosed
	}

	if s.resumes == nil {
		return model.Application{}, eris.Wrap(repository.ErrUnavailable, "résumé storage is not configured")
	}
	stored, err := s.resumes.Put(ctx, in.ResumeName, in.Resume, in.ResumeSize)
	if err != nil {
		if fe, ok := resumeFieldError(err); ok {
			return model.Application{}, newInvalidInput([]FieldError{fe})
		}
		s.log.Error().Err(err).Int64("job_role_id", roleID).Msg("store resume failed")
		return model.Application{}, err
	}

	out, err := s.apps.Create(ctx, model.Application{
		JobRoleID: roleID,
		Applicant: in.Applicant,
		Email:     in.Email,
		Status:    model.ApplicationPending,
		ResumeKey: stored.Key,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		// the uploaded object is orphaned here; the bucket lifecycle rule cleans it up
		s.log.Error().Err(err).Int64("job_role_id", roleID).Str("resume_key", stored.Key).Msg("create application failed")
		return model.Application{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("application_id", out.ID).Int64("job_role_id", roleID).Msg("application submitted")
	return out, nil
}

func (s *applicationService) ListForRole(ctx context.Context, roleID int64) ([]model.Application, error) {
	if roleID <= 0 {
		return nil, idError("role_id")
	}
	apps, err := s.apps.ListByRole(ctx, roleID)
	if err != nil {
		s.log.Error().Err(err).Int64("job_role_id", roleID).Msg("list applications failed")
		return nil, err
	}
	return apps, nil
}

func (s *applicationService) Accept(ctx context.Context, id int64) (model.Application, error) {
	return s.setStatus(ctx, id, model.ApplicationAccepted)
}

func (s *applicationService) Reject(ctx context.Context, id int64) (model.Application, error) {
	return s.setStatus(ctx, id, model.ApplicationRejected)
}

func (s *applicationService) setStatus(ctx context.Context, id int64, status string) (model.Application, error) {
	if id <= 0 {
		return model.Application{}, idError("id")
	}
	out, err := s.apps.SetStatus(ctx, id, status)
	if err != nil {
		s.log.Error().Err(err).Int64("application_id", id).Str("status", status).Msg("set application status failed")
		return model.Application{}, err
	}
	s.log.Info().Int64("application_id", id).Str("status", status).Msg("application status changed")
	return out, nil
}

func resumeFieldError(err error) (FieldError, bool) {
	switch {
	case errors.Is(err, storage.ErrUnsupportedType):
		return FieldError{Field: "resume", Message: "must be a PDF, DOC or DOCX file"}, true
	case errors.Is(err, storage.ErrTooLarge):
		return FieldError{Field: "resume", Message: "file is too large"}, true
	case errors.Is(err, storage.ErrEmpty):
		return FieldError{Field: "resume", Message: "must not be empty"}, true
	default:
		return FieldError{}, false
	}
}

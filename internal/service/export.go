package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/maxviazov/job-portal/internal/export"
	"github.com/maxviazov/job-portal/internal/listfilter"
	"github.com/maxviazov/job-portal/internal/model"
	"github.com/maxviazov/job-portal/internal/pagination"
	"github.com/maxviazov/job-portal/internal/repository"
)

// maxExportPages bounds the export loop if the upstream total keeps moving.
const maxExportPages = 500

type exportService struct {
	repo repository.JobRoleRepository
	log  zerolog.Logger
}

func NewExportService(repo repository.JobRoleRepository, logger zerolog.Logger) ExportService {
	l := logger.With().Str("module", "service").Str("component", "export").Logger()
	return &exportService{repo: repo, log: l}
}

func (s *exportService) JobRolesCSV(ctx context.Context, crit listfilter.Criteria) (string, string, error) {
	roles, err := CollectJobRoles(ctx, s.repo, normalizeCriteria(crit))
	if err != nil {
		s.log.Error().Err(err).Msg("export job roles failed")
		return "", "", err
	}
	records := make([]model.JobRoleRecord, len(roles))
	for i, r := range roles {
		records[i] = r.Record()
	}
	name := export.Filename(export.DefaultFilenamePrefix)
	s.log.Info().Int("rows", len(records)).Str("filename", name).Msg("job roles exported")
	return name, export.JobRolesToCSV(records), nil
}

// CollectJobRoles pages through every role matching crit in upstream order.
func CollectJobRoles(ctx context.Context, repo repository.JobRoleRepository, crit listfilter.Criteria) ([]model.JobRole, error) {
	var all []model.JobRole
	p := repository.Page{Limit: pagination.MaxLimit}
	for i := 0; i < maxExportPages; i++ {
		res, err := repo.List(ctx, p, crit)
		if err != nil {
			return nil, err
		}
		all = append(all, res.Items...)
		// a zero total means upstream did not report one; only a short page ends the walk then
		if len(res.Items) < p.Limit || (res.Total > 0 && len(all) >= res.Total) {
			break
		}
		p.Offset += p.Limit
	}
	return all, nil
}

// Package snapshot keeps the fallback job-role file fresh by copying the backend on a schedule.
package snapshot

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/maxviazov/job-portal/internal/listfilter"
	"github.com/maxviazov/job-portal/internal/repository"
	"github.com/maxviazov/job-portal/internal/repository/fallback"
	"github.com/maxviazov/job-portal/internal/service"
)

// ErrEmptySource is returned when the backend lists no roles; the existing file is kept.
var ErrEmptySource = errors.New("backend returned no job roles")

// Refresher copies every job role from source into the fallback file.
// source must be the backend itself, never a repository that already reads the fallback.
type Refresher struct {
	source  repository.JobRoleRepository
	path    string
	timeout time.Duration
	log     zerolog.Logger
	now     func() time.Time

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
}

func NewRefresher(source repository.JobRoleRepository, path string, timeout time.Duration, logger zerolog.Logger) *Refresher {
	if timeout <= 0 {
		timeout = time.Minute
	}
	l := logger.With().Str("module", "snapshot").Str("component", "refresher").Logger()
	return &Refresher{source: source, path: path, timeout: timeout, log: l, now: time.Now}
}

// RunOnce fetches all roles and atomically replaces the snapshot file.
func (r *Refresher) RunOnce(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := r.now()
	roles, err := service.CollectJobRoles(ctx, r.source, listfilter.Criteria{})
	if err != nil {
		return 0, eris.Wrap(err, "fetching job roles for snapshot")
	}
	if len(roles) == 0 {
		return 0, ErrEmptySource
	}
	if err := fallback.WriteSnapshot(r.path, roles, start.UTC()); err != nil {
		return 0, err
	}
	r.log.Info().Int("roles", len(roles)).Str("path", r.path).Dur("took", r.now().Sub(start)).Msg("snapshot refreshed")
	return len(roles), nil
}

// Start schedules RunOnce with a six-field cron spec (seconds first). Overlapping runs are skipped.
func (r *Refresher) Start(spec string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return errors.New("snapshot refresher is already running")
	}

	cl := cronLogger{log: r.log}
	c := cron.New(cron.WithSeconds(), cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)))
	if _, err := c.AddFunc(spec, r.tick); err != nil {
		return eris.Wrapf(err, "invalid snapshot schedule %q", spec)
	}
	c.Start()
	r.cron = c
	r.running = true
	r.log.Info().Str("schedule", spec).Msg("snapshot refresher started")
	return nil
}

// Stop waits for an in-flight refresh to finish.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return
	}
	<-r.cron.Stop().Done()
	r.running = false
	r.log.Info().Msg("snapshot refresher stopped")
}

func (r *Refresher) tick() {
	if _, err := r.RunOnce(context.Background()); err != nil {
		if errors.Is(err, ErrEmptySource) {
			r.log.Warn().Str("path", r.path).Msg("backend listed no roles; keeping previous snapshot")
			return
		}
		r.log.Error().Err(err).Str("path", r.path).Msg("snapshot refresh failed")
	}
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct{ log zerolog.Logger }

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}

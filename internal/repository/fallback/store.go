// Package fallback serves job roles from a local JSON snapshot when the backend API is unreachable.
// The store is read-only: every write reports repository.ErrUnavailable.
package fallback

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/maxviazov/job-portal/internal/listfilter"
	"github.com/maxviazov/job-portal/internal/model"
	"github.com/maxviazov/job-portal/internal/repository"
)

// ReloadDebounce coalesces bursts of file events (editors and atomic renames emit several).
const ReloadDebounce = 500 * time.Millisecond

// Snapshot is the on-disk format.
type Snapshot struct {
	GeneratedAt time.Time       `json:"generated_at"`
	JobRoles    []model.JobRole `json:"job_roles"`
}

type Store struct {
	path string
	log  zerolog.Logger

	mu       sync.RWMutex
	roles    []model.JobRole
	loadedAt time.Time

	watcher    *fsnotify.Watcher
	stopChan   chan struct{}
	stopOnce   sync.Once
	debounceMu sync.Mutex
	debounce   *time.Timer
}

var _ repository.JobRoleRepository = (*Store)(nil)

// New loads the snapshot at path. A missing file yields an empty store so the service can start
// before the first snapshot has been written.
func New(path string, logger zerolog.Logger) (*Store, error) {
	s := &Store{
		path:     path,
		log:      logger.With().Str("module", "repository").Str("component", "fallback").Logger(),
		stopChan: make(chan struct{}),
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		s.log.Warn().Str("path", path).Msg("fallback snapshot missing, starting empty")
		return s, nil
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the snapshot file. On error the previous data is kept.
func (s *Store) Reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return eris.Wrapf(err, "reading fallback snapshot %s", s.path)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return eris.Wrapf(err, "decoding fallback snapshot %s", s.path)
	}
	s.mu.Lock()
	s.roles = snap.JobRoles
	s.loadedAt = time.Now()
	s.mu.Unlock()
	s.log.Info().Str("path", s.path).Int("roles", len(snap.JobRoles)).Msg("fallback snapshot loaded")
	return nil
}

// LoadedAt returns when the snapshot was last read successfully; zero if never.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Watch reloads the snapshot whenever the file changes. The parent directory is watched
// so files replaced by rename are picked up too.
func (s *Store) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return eris.Wrap(err, "creating fallback watcher")
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		watcher.Close()
		return eris.Wrapf(err, "creating fallback directory %s", dir)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return eris.Wrapf(err, "watching %s", dir)
	}
	s.watcher = watcher
	go s.watchLoop()
	s.log.Info().Str("path", s.path).Msg("watching fallback snapshot")
	return nil
}

func (s *Store) watchLoop() {
	target := filepath.Clean(s.path)
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				s.debounceReload()
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.log.Error().Err(err).Msg("fallback watcher error")
		case <-s.stopChan:
			return
		}
	}
}

func (s *Store) debounceReload() {
	s.debounceMu.Lock()
	defer s.debounceMu.Unlock()
	if s.debounce != nil {
		s.debounce.Stop()
	}
	s.debounce = time.AfterFunc(ReloadDebounce, func() {
		if err := s.Reload(); err != nil {
			s.log.Error().Err(err).Msg("fallback reload failed, keeping previous data")
		}
	})
}

// Close stops the watcher. It is safe to call more than once.
func (s *Store) Close() error {
	var err error
	s.stopOnce.Do(func() {
		close(s.stopChan)
		s.debounceMu.Lock()
		if s.debounce != nil {
			s.debounce.Stop()
		}
		s.debounceMu.Unlock()
		if s.watcher != nil {
			err = s.watcher.Close()
		}
	})
	return err
}

func (s *Store) snapshot() []model.JobRole {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roles
}

func (s *Store) List(_ context.Context, p repository.Page, f listfilter.Criteria) (repository.PageResult[model.JobRole], error) {
	var matched []model.JobRole
	for _, r := range s.snapshot() {
		if f.Match(r.RoleName, r.Location, r.Band) {
			matched = append(matched, r)
		}
	}
	return repository.PageResult[model.JobRole]{Items: repository.Window(matched, p), Total: len(matched)}, nil
}

func (s *Store) GetByID(_ context.Context, id int64) (model.JobRole, error) {
	for _, r := range s.snapshot() {
		if r.ID == id {
			return r, nil
		}
	}
	return model.JobRole{}, repository.ErrNotFound
}

func (s *Store) FilterOptions(_ context.Context) (model.FilterOptions, error) {
	locs := map[string]struct{}{}
	bands := map[string]struct{}{}
	caps := map[string]struct{}{}
	for _, r := range s.snapshot() {
		addNonEmpty(locs, r.Location)
		addNonEmpty(bands, r.Band)
		addNonEmpty(caps, r.Capability)
	}
	return model.FilterOptions{Locations: sortedKeys(locs), Bands: sortedKeys(bands), Capabilities: sortedKeys(caps)}, nil
}

func (s *Store) Create(context.Context, model.JobRole) (model.JobRole, error) {
	return model.JobRole{}, eris.Wrap(repository.ErrUnavailable, "fallback store is read-only")
}

func (s *Store) Update(context.Context, model.JobRole) (model.JobRole, error) {
	return model.JobRole{}, eris.Wrap(repository.ErrUnavailable, "fallback store is read-only")
}

func (s *Store) Delete(context.Context, int64) error {
	return eris.Wrap(repository.ErrUnavailable, "fallback store is read-only")
}

// Ping succeeds once a snapshot has been loaded.
func (s *Store) Ping(context.Context) error {
	if s.LoadedAt().IsZero() {
		return eris.Wrap(repository.ErrUnavailable, "no fallback snapshot loaded")
	}
	return nil
}

// WriteSnapshot writes roles to path atomically (temp file + rename in the same directory).
func WriteSnapshot(path string, roles []model.JobRole, at time.Time) error {
	if roles == nil {
		roles = []model.JobRole{}
	}
	data, err := json.MarshalIndent(Snapshot{GeneratedAt: at, JobRoles: roles}, "", "  ")
	if err != nil {
		return eris.Wrap(err, "encoding snapshot")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "creating snapshot directory %s", dir)
	}
	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return eris.Wrap(err, "creating temp snapshot")
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return eris.Wrap(err, "writing temp snapshot")
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrap(err, "closing temp snapshot")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return eris.Wrapf(err, "replacing snapshot %s", path)
	}
	return nil
}

func addNonEmpty(set map[string]struct{}, v string) {
	if v != "" {
		set[v] = struct{}{}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

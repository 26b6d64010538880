package fallback_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/job-portal/internal/listfilter"
	"github.com/maxviazov/job-portal/internal/model"
	"github.com/maxviazov/job-portal/internal/repository"
	"github.com/maxviazov/job-portal/internal/repository/contract"
	"github.com/maxviazov/job-portal/internal/repository/fallback"
)

func seedRoles() []model.JobRole {
	return []model.JobRole{
		{ID: 1, RoleName: "Software Engineer", Location: "Belfast", Band: "Associate", Capability: "Engineering", Status: model.RoleStatusOpen},
		{ID: 2, RoleName: "Engineering Manager", Location: "Dublin", Band: "Manager", Capability: "Engineering", Status: model.RoleStatusOpen},
		{ID: 3, RoleName: "Data Analyst", Location: "Belfast", Band: "Associate", Capability: "Data", Status: model.RoleStatusClosed},
	}
}

func newStore(t *testing.T, roles []model.JobRole) (*fallback.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "job-roles.json")
	require.NoError(t, fallback.WriteSnapshot(path, roles, time.Now()))
	s, err := fallback.New(path, zerolog.New(io.Discard))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestStore_ListFiltersAndPaginates(t *testing.T) {
	s, _ := newStore(t, seedRoles())
	ctx := context.Background()

	res, err := s.List(ctx, repository.Page{Limit: 1, Offset: 0}, listfilter.Criteria{Query: "ENG"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	require.Len(t, res.Items, 1)
	assert.EqualValues(t, 1, res.Items[0].ID)

	res, err = s.List(ctx, repository.Page{Limit: 1, Offset: 1}, listfilter.Criteria{Query: "ENG"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.EqualValues(t, 2, res.Items[0].ID)

	res, err = s.List(ctx, repository.Page{Limit: 10}, listfilter.Criteria{Location: "Belfast", Band: "Associate"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)

	res, err = s.List(ctx, repository.Page{Limit: 10, Offset: 50}, listfilter.Criteria{})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Empty(t, res.Items)
}

func TestStore_GetAndOptions(t *testing.T) {
	s, _ := newStore(t, seedRoles())
	ctx := context.Background()

	r, err := s.GetByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Data Analyst", r.RoleName)

	_, err = s.GetByID(ctx, 99)
	assert.True(t, errors.Is(err, repository.ErrNotFound))

	opts, err := s.FilterOptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Belfast", "Dublin"}, opts.Locations)
	assert.Equal(t, []string{"Associate", "Manager"}, opts.Bands)
	assert.Equal(t, []string{"Data", "Engineering"}, opts.Capabilities)
}

func TestStore_WritesAreUnavailable(t *testing.T) {
	s, _ := newStore(t, seedRoles())
	ctx := context.Background()

	_, err := s.Create(ctx, model.JobRole{RoleName: "x"})
	assert.True(t, errors.Is(err, repository.ErrUnavailable))
	_, err = s.Update(ctx, model.JobRole{ID: 1})
	assert.True(t, errors.Is(err, repository.ErrUnavailable))
	assert.True(t, errors.Is(s.Delete(ctx, 1), repository.ErrUnavailable))
}

func TestStore_MissingFileStartsEmpty(t *testing.T) {
	s, err := fallback.New(filepath.Join(t.TempDir(), "none.json"), zerolog.New(io.Discard))
	require.NoError(t, err)
	res, err := s.List(context.Background(), repository.Page{Limit: 5}, listfilter.Criteria{})
	require.NoError(t, err)
	assert.Zero(t, res.Total)
	assert.Error(t, s.Ping(context.Background()))
}

func TestStore_CorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := fallback.New(path, zerolog.New(io.Discard))
	assert.Error(t, err)
}

func TestStore_ReloadKeepsPreviousDataOnError(t *testing.T) {
	s, path := newStore(t, seedRoles())
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))
	assert.Error(t, s.Reload())
	_, err := s.GetByID(context.Background(), 1)
	assert.NoError(t, err)
}

func TestStore_WatchPicksUpNewSnapshot(t *testing.T) {
	s, path := newStore(t, seedRoles())
	require.NoError(t, s.Watch())

	next := []model.JobRole{{ID: 10, RoleName: "Designer", Location: "London", Band: "Senior"}}
	require.NoError(t, fallback.WriteSnapshot(path, next, time.Now()))

	assert.Eventually(t, func() bool {
		_, err := s.GetByID(context.Background(), 10)
		return err == nil
	}, 5*time.Second, 50*time.Millisecond)
	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}

func TestStore_ReadContract(t *testing.T) {
	contract.RunJobRoleReadContract(t, func(t *testing.T, roles []model.JobRole) (repository.JobRoleRepository, func()) {
		s, _ := newStore(t, roles)
		return s, func() {}
	})
}

func TestStore_PingerContract(t *testing.T) {
	contract.RunPingerContract(t, func(t *testing.T) (repository.Pinger, func()) {
		s, _ := newStore(t, seedRoles())
		return s, func() {}
	})
}

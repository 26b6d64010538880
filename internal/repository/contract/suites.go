// Package contract holds behaviour suites shared by every implementation of a storage interface.
// Implementations call the Run*Contract functions from their own tests with a factory.
package contract

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/maxviazov/job-portal/internal/listfilter"
	"github.com/maxviazov/job-portal/internal/model"
	"github.com/maxviazov/job-portal/internal/repository"
	"github.com/maxviazov/job-portal/internal/repository/cache"
)

type CacheFactory func(t *testing.T) (cache.Cache, func())

// ReadRepoFactory builds a job-role repository pre-seeded with roles.
type ReadRepoFactory func(t *testing.T, roles []model.JobRole) (repository.JobRoleRepository, func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

func RunCacheContract(t *testing.T, makeCache CacheFactory) {
	t.Helper()

	t.Run("set_and_get", func(t *testing.T) {
		c, cleanup := makeCache(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if err := c.Set(ctx, "k1", []byte("v1"), time.Minute); err != nil {
			t.Fatalf("set: %v", err)
		}
		got, ok, err := c.Get(ctx, "k1")
		if err != nil || !ok || !bytes.Equal(got, []byte("v1")) {
			t.Fatalf("get: ok=%v err=%v val=%q", ok, err, got)
		}
	})

	t.Run("miss", func(t *testing.T) {
		c, cleanup := makeCache(t)
		t.Cleanup(cleanup)
		_, ok, err := c.Get(context.Background(), "absent")
		if err != nil || ok {
			t.Fatalf("expected clean miss, ok=%v err=%v", ok, err)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		c, cleanup := makeCache(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		_ = c.Set(ctx, "k", []byte("a"), time.Minute)
		_ = c.Set(ctx, "k", []byte("b"), time.Minute)
		got, ok, _ := c.Get(ctx, "k")
		if !ok || string(got) != "b" {
			t.Fatalf("expected b, got %q ok=%v", got, ok)
		}
	})

	t.Run("delete", func(t *testing.T) {
		c, cleanup := makeCache(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		_ = c.Set(ctx, "a", []byte("1"), time.Minute)
		_ = c.Set(ctx, "b", []byte("2"), time.Minute)
		if err := c.Delete(ctx, "a", "b", "never-set"); err != nil {
			t.Fatalf("delete: %v", err)
		}
		for _, k := range []string{"a", "b"} {
			if _, ok, _ := c.Get(ctx, k); ok {
				t.Fatalf("key %s still present after delete", k)
			}
		}
	})

	t.Run("ttl_expiry", func(t *testing.T) {
		c, cleanup := makeCache(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if err := c.Set(ctx, "short", []byte("x"), 100*time.Millisecond); err != nil {
			t.Fatalf("set: %v", err)
		}
		time.Sleep(300 * time.Millisecond)
		if _, ok, _ := c.Get(ctx, "short"); ok {
			t.Fatalf("expected entry to expire")
		}
	})
}

// RunJobRoleReadContract checks the read side every job-role source must honour.
func RunJobRoleReadContract(t *testing.T, makeRepo ReadRepoFactory) {
	t.Helper()

	seed := []model.JobRole{
		{ID: 1, RoleName: "Software Engineer", Location: "Belfast", Band: "Associate", Capability: "Engineering", Status: model.RoleStatusOpen},
		{ID: 2, RoleName: "Test Engineer", Location: "Derry", Band: "Senior Associate", Capability: "Engineering", Status: model.RoleStatusOpen},
		{ID: 3, RoleName: "Delivery Manager", Location: "Belfast", Band: "Manager", Capability: "Delivery", Status: model.RoleStatusOpen},
		{ID: 4, RoleName: "Data Engineer", Location: "London", Band: "Associate", Capability: "Data", Status: model.RoleStatusClosed},
		{ID: 5, RoleName: "UX Designer", Location: "Belfast", Band: "Associate", Capability: "Design", Status: model.RoleStatusOpen},
	}

	t.Run("get_by_id", func(t *testing.T) {
		repo, cleanup := makeRepo(t, seed)
		t.Cleanup(cleanup)
		got, err := repo.GetByID(context.Background(), 3)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.ID != 3 || got.RoleName != "Delivery Manager" {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t, seed)
		t.Cleanup(cleanup)
		_, err := repo.GetByID(context.Background(), 999999)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list_pagination_total", func(t *testing.T) {
		repo, cleanup := makeRepo(t, seed)
		t.Cleanup(cleanup)
		ctx := context.Background()
		res, err := repo.List(ctx, repository.Page{Limit: 2, Offset: 0}, listfilter.Criteria{})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 2 || res.Total != 5 {
			t.Fatalf("unexpected page: len=%d total=%d", len(res.Items), res.Total)
		}
		res2, err := repo.List(ctx, repository.Page{Limit: 2, Offset: 4}, listfilter.Criteria{})
		if err != nil {
			t.Fatalf("list2: %v", err)
		}
		if len(res2.Items) != 1 || res2.Total != 5 {
			t.Fatalf("unexpected page2: len=%d total=%d", len(res2.Items), res2.Total)
		}
	})

	t.Run("list_filtered", func(t *testing.T) {
		repo, cleanup := makeRepo(t, seed)
		t.Cleanup(cleanup)
		res, err := repo.List(context.Background(), repository.Page{Limit: 10}, listfilter.Criteria{Query: "engineer", Location: "Belfast"})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.Total != 1 || len(res.Items) != 1 || res.Items[0].ID != 1 {
			t.Fatalf("unexpected filter result: %+v", res)
		}
	})

	t.Run("filter_options", func(t *testing.T) {
		repo, cleanup := makeRepo(t, seed)
		t.Cleanup(cleanup)
		opts, err := repo.FilterOptions(context.Background())
		if err != nil {
			t.Fatalf("options: %v", err)
		}
		if len(opts.Locations) != 3 || len(opts.Bands) != 3 || len(opts.Capabilities) != 4 {
			t.Fatalf("unexpected options: %+v", opts)
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	t.Run("ping_ok", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		if err := p.Ping(context.Background()); err != nil {
			t.Fatalf("expected ping ok, got %v", err)
		}
	})
}

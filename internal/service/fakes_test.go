package service_test

import (
	"bytes"
	"context"
	"io"
	"sort"

	"github.com/maxviazov/job-portal/internal/listfilter"
	"github.com/maxviazov/job-portal/internal/model"
	"github.com/maxviazov/job-portal/internal/repository"
	"github.com/maxviazov/job-portal/internal/storage"
)

type fakeJobRoleRepo struct {
	nextID   int64
	items    map[int64]model.JobRole
	listErr  error
	lastPage repository.Page
	lastCrit listfilter.Criteria
	lists    int
	// noTotal mimics an upstream that leaves total out of list responses.
	noTotal bool
}

func newFakeJobRoleRepo(roles ...model.JobRole) *fakeJobRoleRepo {
	f := &fakeJobRoleRepo{nextID: 1, items: map[int64]model.JobRole{}}
	for _, r := range roles {
		if r.ID >= f.nextID {
			f.nextID = r.ID + 1
		}
		f.items[r.ID] = r
	}
	return f
}

func (f *fakeJobRoleRepo) sorted() []model.JobRole {
	out := make([]model.JobRole, 0, len(f.items))
	for _, r := range f.items {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeJobRoleRepo) List(_ context.Context, p repository.Page, c listfilter.Criteria) (repository.PageResult[model.JobRole], error) {
	f.lists++
	f.lastPage = p
	f.lastCrit = c
	if f.listErr != nil {
		return repository.PageResult[model.JobRole]{}, f.listErr
	}
	var matched []model.JobRole
	for _, r := range f.sorted() {
		if c.Match(r.RoleName, r.Location, r.Band) {
			matched = append(matched, r)
		}
	}
	total := len(matched)
	if f.noTotal {
		total = 0
	}
	return repository.PageResult[model.JobRole]{Items: repository.Window(matched, p), Total: total}, nil
}

func (f *fakeJobRoleRepo) GetByID(_ context.Context, id int64) (model.JobRole, error) {
	r, ok := f.items[id]
	if !ok {
		return model.JobRole{}, repository.ErrNotFound
	}
	return r, nil
}

func (f *fakeJobRoleRepo) Create(_ context.Context, r model.JobRole) (model.JobRole, error) {
	r.ID = f.nextID
	f.nextID++
	f.items[r.ID] = r
	return r, nil
}

func (f *fakeJobRoleRepo) Update(_ context.Context, r model.JobRole) (model.JobRole, error) {
	if _, ok := f.items[r.ID]; !ok {
		return model.JobRole{}, repository.ErrNotFound
	}
	f.items[r.ID] = r
	return r, nil
}

func (f *fakeJobRoleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeJobRoleRepo) FilterOptions(context.Context) (model.FilterOptions, error) {
	return model.FilterOptions{Locations: []string{"Belfast"}, Bands: []string{"Senior"}, Capabilities: []string{"Engineering"}}, nil
}

var _ repository.JobRoleRepository = (*fakeJobRoleRepo)(nil)

type fakeApplicationRepo struct {
	nextID int64
	items  map[int64]model.Application
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{nextID: 1, items: map[int64]model.Application{}}
}

func (f *fakeApplicationRepo) Create(_ context.Context, a model.Application) (model.Application, error) {
	a.ID = f.nextID
	f.nextID++
	f.items[a.ID] = a
	return a, nil
}

func (f *fakeApplicationRepo) ListByRole(_ context.Context, roleID int64) ([]model.Application, error) {
	var out []model.Application
	for _, a := range f.items {
		if a.JobRoleID == roleID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) SetStatus(_ context.Context, id int64, status string) (model.Application, error) {
	a, ok := f.items[id]
	if !ok {
		return model.Application{}, repository.ErrNotFound
	}
	a.Status = status
	f.items[id] = a
	return a, nil
}

var _ repository.ApplicationRepository = (*fakeApplicationRepo)(nil)

// memObjects keeps uploaded objects in memory.
type memObjects struct {
	objects map[string][]byte
}

func (m *memObjects) EnsureBucket(context.Context) error { return nil }

func (m *memObjects) PutObject(_ context.Context, key string, r io.Reader, _ int64, _ string, _ map[string]string) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return err
	}
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	m.objects[key] = buf.Bytes()
	return nil
}

var _ storage.ObjectStore = (*memObjects)(nil)

package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/job-portal/internal/auth"
	"github.com/maxviazov/job-portal/internal/handler"
	"github.com/maxviazov/job-portal/internal/listfilter"
	"github.com/maxviazov/job-portal/internal/model"
	"github.com/maxviazov/job-portal/internal/service"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// stubPinger implements handler.Pinger for health endpoints.
type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

// stubJobRoleService lets each test control outcomes and inspect inputs.
type stubJobRoleService struct {
	gotPage, gotLimit string
	gotCrit           listfilter.Criteria
	gotID             int64
	gotInput          service.JobRoleInput

	page    service.JobRolePage
	role    model.JobRole
	options model.FilterOptions
	err     error
}

func (s *stubJobRoleService) List(_ context.Context, page, limit string, c listfilter.Criteria) (service.JobRolePage, error) {
	s.gotPage, s.gotLimit, s.gotCrit = page, limit, c
	return s.page, s.err
}
func (s *stubJobRoleService) Get(_ context.Context, id int64) (model.JobRole, error) {
	s.gotID = id
	return s.role, s.err
}
func (s *stubJobRoleService) Create(_ context.Context, in service.JobRoleInput) (model.JobRole, error) {
	s.gotInput = in
	return s.role, s.err
}
func (s *stubJobRoleService) Update(_ context.Context, id int64, in service.JobRoleInput) (model.JobRole, error) {
	s.gotID, s.gotInput = id, in
	return s.role, s.err
}
func (s *stubJobRoleService) Delete(_ context.Context, id int64) error {
	s.gotID = id
	return s.err
}
func (s *stubJobRoleService) FilterOptions(context.Context) (model.FilterOptions, error) {
	return s.options, s.err
}

type stubApplicationService struct {
	gotRoleID int64
	gotID     int64
	gotInput  service.ApplyInput
	gotResume string
	gotToken  string

	app  model.Application
	apps []model.Application
	err  error
}

func (s *stubApplicationService) Apply(ctx context.Context, roleID int64, in service.ApplyInput) (model.Application, error) {
	s.gotRoleID, s.gotInput = roleID, in
	s.gotToken = auth.TokenFrom(ctx)
	if in.Resume != nil {
		b, _ := io.ReadAll(in.Resume)
		s.gotResume = string(b)
	}
	return s.app, s.err
}
func (s *stubApplicationService) ListForRole(_ context.Context, roleID int64) ([]model.Application, error) {
	s.gotRoleID = roleID
	return s.apps, s.err
}
func (s *stubApplicationService) Accept(_ context.Context, id int64) (model.Application, error) {
	s.gotID = id
	s.app.Status = model.ApplicationAccepted
	return s.app, s.err
}
func (s *stubApplicationService) Reject(_ context.Context, id int64) (model.Application, error) {
	s.gotID = id
	s.app.Status = model.ApplicationRejected
	return s.app, s.err
}

type stubExportService struct {
	gotCrit  listfilter.Criteria
	filename string
	body     string
	err      error
}

func (s *stubExportService) JobRolesCSV(_ context.Context, c listfilter.Criteria) (string, string, error) {
	s.gotCrit = c
	return s.filename, s.body, s.err
}

type fixture struct {
	engine   *gin.Engine
	roles    *stubJobRoleService
	apps     *stubApplicationService
	export   *stubExportService
	verifier *auth.Verifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	v, err := auth.NewVerifier(auth.Config{Secret: testSecret, Issuer: "job-portal-test", TTL: time.Minute})
	require.NoError(t, err)
	f := &fixture{
		roles:    &stubJobRoleService{},
		apps:     &stubApplicationService{},
		export:   &stubExportService{},
		verifier: v,
	}
	f.engine = handler.NewRouter(handler.Deps{
		Logger:         zerolog.New(io.Discard),
		Ready:          stubPinger{},
		JobRoles:       f.roles,
		Applications:   f.apps,
		Export:         f.export,
		Verifier:       v,
		CookieName:     "session",
		MaxResumeBytes: 1 << 20,
	})
	return f
}

func (f *fixture) token(t *testing.T, role string) string {
	t.Helper()
	tok, err := f.verifier.Issue("user-1", "user@example.com", role)
	require.NoError(t, err)
	return tok
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

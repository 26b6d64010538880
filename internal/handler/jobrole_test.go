package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/job-portal/internal/listfilter"
	"github.com/maxviazov/job-portal/internal/model"
	"github.com/maxviazov/job-portal/internal/repository"
	"github.com/maxviazov/job-portal/internal/service"
	"github.com/maxviazov/job-portal/pkg/response"
)

func TestListJobRoles_OK(t *testing.T) {
	f := newFixture(t)
	f.roles.page = service.JobRolePage{
		Items:      []model.JobRole{{ID: 1, RoleName: "Engineer", ClosingDate: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}},
		Page:       2,
		Limit:      12,
		Total:      13,
		TotalPages: 2,
	}

	w := f.do(httptest.NewRequest(http.MethodGet, "/api/v1/job-roles?page=2&limit=12&q=eng&location=Belfast&band=Senior", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, "2", f.roles.gotPage)
	assert.Equal(t, "12", f.roles.gotLimit)
	assert.Equal(t, listfilter.Criteria{Query: "eng", Location: "Belfast", Band: "Senior"}, f.roles.gotCrit)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	for _, k := range []string{"items", "page", "limit", "total", "total_pages"} {
		assert.Contains(t, body, k)
	}
	assert.EqualValues(t, 2, body["total_pages"])
}

func TestListJobRoles_PassesRawPagination(t *testing.T) {
	f := newFixture(t)
	f.do(httptest.NewRequest(http.MethodGet, "/api/v1/job-roles?page=1.5&limit=%20", nil))
	assert.Equal(t, "1.5", f.roles.gotPage)
	assert.Equal(t, " ", f.roles.gotLimit)
}

func TestListJobRoles_InvalidPagination(t *testing.T) {
	f := newFixture(t)
	f.roles.err = service.InvalidField("limit", "Limit cannot exceed 100")

	w := f.do(httptest.NewRequest(http.MethodGet, "/api/v1/job-roles?limit=101", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)

	var payload response.ErrorPayload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "invalid_input", payload.Error)
	require.Len(t, payload.FieldErrors, 1)
	assert.Equal(t, "Limit cannot exceed 100", payload.FieldErrors[0].Message)
}

func TestListJobRoles_Unavailable(t *testing.T) {
	f := newFixture(t)
	f.roles.err = repository.ErrUnavailable
	w := f.do(httptest.NewRequest(http.MethodGet, "/api/v1/job-roles", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetJobRole(t *testing.T) {
	f := newFixture(t)
	f.roles.role = model.JobRole{ID: 7, RoleName: "Tester"}
	w := f.do(httptest.NewRequest(http.MethodGet, "/api/v1/job-roles/7", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), f.roles.gotID)
	assert.Contains(t, w.Body.String(), `"role_name":"Tester"`)

	f.roles.err = repository.ErrNotFound
	w = f.do(httptest.NewRequest(http.MethodGet, "/api/v1/job-roles/8", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetJobRole_NonNumericIDReachesServiceAsZero(t *testing.T) {
	f := newFixture(t)
	f.roles.err = service.InvalidField("id", "must be > 0")
	w := f.do(httptest.NewRequest(http.MethodGet, "/api/v1/job-roles/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, f.roles.gotID)
}

func TestFilterOptions(t *testing.T) {
	f := newFixture(t)
	f.roles.options = model.FilterOptions{Locations: []string{"Belfast"}, Bands: []string{"Senior"}, Capabilities: []string{"Data"}}
	w := f.do(httptest.NewRequest(http.MethodGet, "/api/v1/job-roles/filters", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"locations":["Belfast"],"bands":["Senior"],"capabilities":["Data"]}`, w.Body.String())
}

func TestExportCSV(t *testing.T) {
	f := newFixture(t)
	f.export.filename = "job-roles-2025-03-07-040509.csv"
	f.export.body = "Job Role ID,Role Name,Location,Capability,Band,Closing Date,Status"

	w := f.do(httptest.NewRequest(http.MethodGet, "/api/v1/job-roles/export?band=Senior", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="job-roles-2025-03-07-040509.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, f.export.body, w.Body.String())
	assert.Equal(t, "Senior", f.export.gotCrit.Band)
}

func TestExportCSV_Error(t *testing.T) {
	f := newFixture(t)
	f.export.err = repository.ErrUnavailable
	w := f.do(httptest.NewRequest(http.MethodGet, "/api/v1/job-roles/export", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/job-portal/internal/listfilter"
	"github.com/maxviazov/job-portal/internal/service"
	"github.com/maxviazov/job-portal/pkg/response"
)

type JobRoleHandler struct {
	svc    service.JobRoleService
	export service.ExportService
}

func NewJobRoleHandler(svc service.JobRoleService, export service.ExportService) *JobRoleHandler {
	return &JobRoleHandler{svc: svc, export: export}
}

func (h *JobRoleHandler) Register(r *gin.RouterGroup) {
	g := r.Group(jobRolesPath)
	{
		g.GET("", h.list)
		g.GET("/filters", h.filters)
		g.GET("/export", h.exportCSV)
		// role_id is shared with the nested applications routes.
		g.GET(byID(roleIDParam), h.getByID)
	}
}

func (h *JobRoleHandler) list(c *gin.Context) {
	// page and limit stay raw strings: the service owns their validation and messages
	res, err := h.svc.List(c.Request.Context(), c.Query("page"), c.Query("limit"), criteriaFrom(c))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *JobRoleHandler) filters(c *gin.Context) {
	opts, err := h.svc.FilterOptions(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, opts)
}

func (h *JobRoleHandler) getByID(c *gin.Context) {
	id := parseID(c.Param(roleIDParam))
	role, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, role)
}

func (h *JobRoleHandler) exportCSV(c *gin.Context) {
	name, body, err := h.export.JobRolesCSV(c.Request.Context(), criteriaFrom(c))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(body))
}

func criteriaFrom(c *gin.Context) listfilter.Criteria {
	var crit listfilter.Criteria
	_ = c.ShouldBindQuery(&crit) // string-only fields never fail to bind
	return crit
}

// parseID returns 0 for anything unparsable; services reject ids < 1 as invalid input.
func parseID(raw string) int64 {
	id, _ := strconv.ParseInt(raw, 10, 64)
	return id
}

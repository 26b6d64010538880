package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/job-portal/internal/service"
	"github.com/maxviazov/job-portal/pkg/response"
)

// AdminHandler serves role management and applicant review. Mount it behind Authenticate and RequireAdmin.
type AdminHandler struct {
	roles service.JobRoleService
	apps  service.ApplicationService
}

func NewAdminHandler(roles service.JobRoleService, apps service.ApplicationService) *AdminHandler {
	return &AdminHandler{roles: roles, apps: apps}
}

func (h *AdminHandler) Register(r *gin.RouterGroup) {
	roles := r.Group(jobRolesPath)
	{
		roles.POST("", h.createRole)
		roles.PUT(byID(roleIDParam), h.updateRole)
		roles.DELETE(byID(roleIDParam), h.deleteRole)
		roles.GET(byID(roleIDParam)+applicationsPath, h.listApplications)
	}
	apps := r.Group(applicationsPath)
	{
		apps.POST(byID(applicationIDParam)+"/accept", h.accept)
		apps.POST(byID(applicationIDParam)+"/reject", h.reject)
	}
}

func (h *AdminHandler) createRole(c *gin.Context) {
	var req service.JobRoleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.InvalidField("body", "malformed JSON"))
		return
	}
	role, err := h.roles.Create(c.Request.Context(), req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, role)
}

func (h *AdminHandler) updateRole(c *gin.Context) {
	var req service.JobRoleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.InvalidField("body", "malformed JSON"))
		return
	}
	role, err := h.roles.Update(c.Request.Context(), parseID(c.Param(roleIDParam)), req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, role)
}

func (h *AdminHandler) deleteRole(c *gin.Context) {
	if err := h.roles.Delete(c.Request.Context(), parseID(c.Param(roleIDParam))); err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteNoContent(c)
}

func (h *AdminHandler) listApplications(c *gin.Context) {
	apps, err := h.apps.ListForRole(c.Request.Context(), parseID(c.Param(roleIDParam)))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, gin.H{"items": apps})
}

func (h *AdminHandler) accept(c *gin.Context) {
	app, err := h.apps.Accept(c.Request.Context(), parseID(c.Param(applicationIDParam)))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, app)
}

func (h *AdminHandler) reject(c *gin.Context) {
	app, err := h.apps.Reject(c.Request.Context(), parseID(c.Param(applicationIDParam)))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, app)
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/maxviazov/job-portal/internal/service"
)

// Deps groups what the HTTP layer needs. Verifier may be nil, in which case the
// apply and admin routes are not mounted.
type Deps struct {
	Logger         zerolog.Logger
	Ready          Pinger
	JobRoles       service.JobRoleService
	Applications   service.ApplicationService
	Export         service.ExportService
	Verifier       TokenVerifier
	CookieName     string
	CORSOrigins    []string
	MaxResumeBytes int64
	// OpenAPIPath defaults to DefaultOpenAPIPath.
	OpenAPIPath string
}

// NewRouter builds the engine with the standard middleware chain and all routes.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), RequestLogger(d.Logger), gin.Recovery(), CORS(d.CORSOrigins))
	Register(r, d)
	return r
}

// Register mounts the probes and docs at the root and the versioned API under APIV1Prefix.
func Register(r *gin.Engine, d Deps) {
	probes := NewHealthHandler(d.Ready)
	probes.Register(r)
	NewDocsHandler(d.OpenAPIPath).Register(r)

	api := r.Group(APIV1Prefix)
	probes.Register(api.Group(healthPath))
	NewJobRoleHandler(d.JobRoles, d.Export).Register(api)

	if d.Verifier == nil {
		d.Logger.Warn().Msg("no token verifier configured; apply and admin routes are disabled")
		return
	}
	authed := api.Group("", Authenticate(d.Verifier, d.CookieName))
	NewApplicationHandler(d.Applications, d.MaxResumeBytes).Register(authed)
	NewAdminHandler(d.JobRoles, d.Applications).Register(authed.Group(adminPath, RequireAdmin()))
}

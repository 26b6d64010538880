package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/job-portal/internal/service"
	"github.com/maxviazov/job-portal/pkg/response"
)

// multipartOverhead is slack for form fields and part headers on top of the résumé limit.
const multipartOverhead = 64 << 10

type ApplicationHandler struct {
	svc      service.ApplicationService
	maxBytes int64
}

// NewApplicationHandler caps request bodies at maxResumeBytes plus form overhead.
func NewApplicationHandler(svc service.ApplicationService, maxResumeBytes int64) *ApplicationHandler {
	return &ApplicationHandler{svc: svc, maxBytes: maxResumeBytes + multipartOverhead}
}

func (h *ApplicationHandler) Register(r *gin.RouterGroup) {
	r.POST(jobRolesPath+byID(roleIDParam)+applicationsPath, h.apply)
}

func (h *ApplicationHandler) apply(c *gin.Context) {
	roleID := parseID(c.Param(roleIDParam))
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)

	// FormFile parses the multipart body; PostForm then reads from the parsed form.
	fh, err := c.FormFile("resume")
	in := service.ApplyInput{
		Applicant: c.PostForm("applicant"),
		Email:     c.PostForm("email"),
	}
	switch {
	case err == nil:
		f, openErr := fh.Open()
		if openErr != nil {
			response.WriteError(c, openErr)
			return
		}
		defer f.Close()
		in.ResumeName = fh.Filename
		in.Resume = f
		in.ResumeSize = fh.Size
	case isTooLarge(err):
		response.WriteError(c, service.InvalidField("resume", "file is too large"))
		return
	}
	// a missing file is reported by the service alongside other field errors

	app, err := h.svc.Apply(c.Request.Context(), roleID, in)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, app)
}

func isTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return true
	}
	// some multipart read paths flatten the error to text
	return strings.Contains(err.Error(), "request body too large")
}

package handler

import (
	_ "embed"
	"errors"
	"io/fs"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// DefaultOpenAPIPath is relative to the working directory the server is started from.
const DefaultOpenAPIPath = "api/openapi.yaml"

// Swagger UI shell; assets come from a CDN and it loads /openapi.yaml.
//
//go:embed swagger.html
var swaggerHTML []byte

// DocsHandler serves the OpenAPI document and a Swagger UI page for it.
// The document is read from disk per request so edits show up without a restart.
type DocsHandler struct {
	specPath string
}

func NewDocsHandler(specPath string) *DocsHandler {
	if specPath == "" {
		specPath = DefaultOpenAPIPath
	}
	return &DocsHandler{specPath: specPath}
}

func (h *DocsHandler) Register(r gin.IRoutes) {
	r.GET("/openapi.yaml", h.spec)
	r.GET("/docs", h.ui)
}

func (h *DocsHandler) spec(c *gin.Context) {
	data, err := os.ReadFile(h.specPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		c.String(http.StatusNotFound, "openapi document not found at %s", h.specPath)
		return
	case err != nil:
		c.String(http.StatusInternalServerError, "reading openapi document: %v", err)
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "application/yaml; charset=utf-8", data)
}

func (h *DocsHandler) ui(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", swaggerHTML)
}

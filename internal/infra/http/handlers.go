package http

import (
	"embed"
	"errors"
	"net/http"
	"strings"

	"realz/internal/domain"
	"realz/internal/usecase"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const pageTemplate = "page.html.tmpl"

type errorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Endpoint string `json:"endpoint,omitempty"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{Status: "ok", Endpoint: s.endpointHost})
}

// handlePage renders the verification page for the request's own location.
// The verdict lives in the body, so the page is always served with 200.
func (s *Server) handlePage(c *gin.Context) {
	if !s.enforceRateLimit(c, routePage) {
		return
	}
	vm := s.renderLocation(c, usecase.LocationFromURL(c.Request.URL))
	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, pageTemplate, vm)
}

// handleViewAPI renders the view model for the location given in ?path=,
// which may itself carry a ?p= redirect parameter.
func (s *Server) handleViewAPI(c *gin.Context) {
	if !s.enforceRateLimit(c, routeViewAPI) {
		return
	}
	raw := strings.TrimSpace(c.Query("path"))
	if raw == "" {
		writeErrorCode(c, http.StatusBadRequest, "MISSING_PATH", "path query parameter is required")
		return
	}
	loc, err := usecase.ParseLocation(raw)
	if err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_PATH", "path is not a valid url")
		return
	}
	vm := s.renderLocation(c, loc)
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, vm)
}

func (s *Server) handleNoRoute(c *gin.Context) {
	if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
		s.handlePage(c)
		return
	}
	writeError(c, domain.ErrNotFound)
}

func (s *Server) renderLocation(c *gin.Context, loc usecase.Location) *usecase.ViewModel {
	vm := usecase.NewViewModel()
	s.render.Execute(c.Request.Context(), loc, vm)
	return vm
}

func writeError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, code = http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrMalformedLink):
		status, code = http.StatusBadRequest, "MALFORMED_LINK"
	case errors.Is(err, domain.ErrVerificationUnavailable):
		status, code = http.StatusBadGateway, "VERIFICATION_UNAVAILABLE"
	}
	writeErrorCode(c, status, code, err.Error())
}

func writeErrorCode(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, errorResponse{
		Code:    code,
		Message: message,
	})
}

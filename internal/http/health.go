package http

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const healthCheckTimeout = 2 * time.Second

// Pinger checks connectivity to a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// HealthController reports whether every registered dependency answers.
type HealthController struct {
	version string
	checks  map[string]Pinger
}

// NewHealthController creates a controller with no checks; an empty
// controller always reports healthy.
func NewHealthController(version string) *HealthController {
	return &HealthController{version: version, checks: make(map[string]Pinger)}
}

// Register adds a named check. A nil pinger is ignored.
func (h *HealthController) Register(name string, p Pinger) *HealthController {
	if p != nil {
		h.checks[name] = p
	}
	return h
}

func (h *HealthController) Status(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	response := HealthResponse{
		Status:  "healthy",
		Time:    time.Now().UTC().Format(time.RFC3339),
		Version: h.version,
		Checks:  make(map[string]string, len(names)),
	}
	for _, name := range names {
		if err := h.checks[name].Ping(ctx); err != nil {
			log.Warn().Err(err).Str("check", name).Msg("health check failed")
			response.Checks[name] = "error: " + err.Error()
			response.Status = "unhealthy"
			continue
		}
		response.Checks[name] = "ok"
	}

	status := http.StatusOK
	if response.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, response)
}

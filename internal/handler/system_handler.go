package handler

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/cbity-backend/internal/response"
	"golang.org/x/sync/errgroup"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *pgxpool.Pool. Redis is adapted with PingFunc.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// ModeReader reports the active data source.
type ModeReader interface {
	UseDatabase() bool
}

// SystemHandler reports process and dependency health.
type SystemHandler struct {
	deps      map[string]Pinger
	mode      ModeReader
	startTime time.Time
	log       zerolog.Logger
}

// NewSystemHandler creates a SystemHandler. A nil Pinger marks a dependency
// that is not configured.
func NewSystemHandler(deps map[string]Pinger, mode ModeReader, log zerolog.Logger) *SystemHandler {
	return &SystemHandler{
		deps:      deps,
		mode:      mode,
		startTime: time.Now(),
		log:       log.With().Str("component", "system_handler").Logger(),
	}
}

type healthReport struct {
	Status       string            `json:"status"`
	UseDatabase  bool              `json:"use_database"`
	Dependencies map[string]string `json:"dependencies"`
	Uptime       string            `json:"uptime"`
	Goroutines   int               `json:"goroutines"`
	HeapAlloc    uint64            `json:"heap_alloc"`
	GoVersion    string            `json:"go_version"`
}

// Health godoc
// GET /health
// Pings every dependency concurrently. A failing dependency only degrades the
// report when the data source that needs it is active.
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	names := make([]string, 0, len(h.deps))
	for name := range h.deps {
		names = append(names, name)
	}
	states := make([]string, len(names))

	var g errgroup.Group
	for i, name := range names {
		p := h.deps[name]
		g.Go(func() error {
			switch {
			case p == nil:
				states[i] = "disabled"
			case p.Ping(ctx) != nil:
				states[i] = "down"
			default:
				states[i] = "up"
			}
			return nil
		})
	}
	_ = g.Wait()

	report := healthReport{
		Status:       "ok",
		UseDatabase:  h.mode.UseDatabase(),
		Dependencies: make(map[string]string, len(names)),
		Uptime:       formatDuration(time.Since(h.startTime)),
		Goroutines:   runtime.NumGoroutine(),
		GoVersion:    runtime.Version(),
	}
	for i, name := range names {
		report.Dependencies[name] = states[i]
		if states[i] == "down" {
			h.log.Warn().Str("dependency", name).Msg("health ping failed")
			if report.UseDatabase {
				report.Status = "degraded"
			}
		}
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	report.HeapAlloc = mem.HeapAlloc

	status := http.StatusOK
	if report.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	response.Success(c, status, report)
}

func formatDuration(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

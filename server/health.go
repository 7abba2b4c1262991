package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ZaguanLabs/sarf"
	"github.com/ZaguanLabs/sarf/cache"
)

// statser is implemented by the in-memory cache.
type statser interface {
	Stats() cache.Stats
}

// HealthResponse is the JSON body of /health.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version"`
	Components map[string]CompStatus `json:"components"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Detail  string `json:"detail,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// handleHealth reports the glossary, examples and cache. A glossary that
// failed to load degrades the status; a cache that cannot be pinged makes
// it "down" with 503.
func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	components := make(map[string]CompStatus)
	overall := "ok"

	gl := CompStatus{Status: "ok", Detail: a.Glossary.Version()}
	if !a.Glossary.Loaded() {
		gl.Status = "degraded"
		overall = "degraded"
	}
	components["glossary"] = gl

	if _, ready := a.Examples(); ready {
		components["examples"] = CompStatus{Status: "ok"}
	} else {
		components["examples"] = CompStatus{Status: "loading"}
	}

	status := http.StatusOK
	switch c := a.Cache.(type) {
	case nil:
		components["cache"] = CompStatus{Status: "disabled"}
	case statser:
		st := c.Stats()
		components["cache"] = CompStatus{
			Status: "ok",
			Detail: fmt.Sprintf("entries=%d hits=%d misses=%d", st.Entries, st.Hits, st.Misses),
		}
	}
	if p, ok := a.Cache.(pinger); ok {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		start := time.Now()
		if err := p.Ping(ctx); err != nil {
			components["cache"] = CompStatus{Status: "down"}
			overall = "down"
			status = http.StatusServiceUnavailable
		} else {
			components["cache"] = CompStatus{Status: "ok", Latency: time.Since(start).String()}
		}
	}

	writeJSON(w, status, HealthResponse{
		Status:     overall,
		Version:    sarf.FullVersion(),
		Components: components,
		Timestamp:  time.Now(),
	})
}

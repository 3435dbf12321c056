package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"sort"
	"time"
)

const checkTimeout = 2 * time.Second

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// PingChecker adapts a Ping method (sql.DB, Redis) to HealthChecker.
type PingChecker func(ctx context.Context) error

func (p PingChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	return p(ctx)
}

// DBChecker pings a database pool.
func DBChecker(db *sql.DB) HealthChecker {
	return PingChecker(db.PingContext)
}

type dependency struct {
	name     string
	checker  HealthChecker
	critical bool
}

// Health tracks the dependencies behind /health and /ready. A failing critical
// dependency (the database) makes the service unhealthy; a failing optional one
// (strategy cache, report store) only degrades it.
type Health struct {
	deps []dependency
	now  func() time.Time
}

func NewHealth() *Health {
	return &Health{now: time.Now}
}

// Critical registers a dependency the pipeline cannot run without.
func (h *Health) Critical(name string, c HealthChecker) *Health {
	h.deps = append(h.deps, dependency{name: name, checker: c, critical: true})
	return h
}

// Optional registers a dependency whose loss only disables a feature.
func (h *Health) Optional(name string, c HealthChecker) *Health {
	h.deps = append(h.deps, dependency{name: name, checker: c})
	return h
}

type HealthReport struct {
	Status    string                 `json:"status"` // healthy | degraded | unhealthy
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
}

type CheckStatus struct {
	Status   string `json:"status"`
	Critical bool   `json:"critical"`
	Message  string `json:"message,omitempty"`
}

// Report runs every check once; onlyCritical skips the optional ones.
func (h *Health) Report(ctx context.Context, onlyCritical bool) HealthReport {
	rep := HealthReport{Status: "healthy", Timestamp: h.now(), Checks: map[string]CheckStatus{}}
	deps := append([]dependency(nil), h.deps...)
	sort.SliceStable(deps, func(i, j int) bool { return deps[i].critical && !deps[j].critical })

	for _, d := range deps {
		if onlyCritical && !d.critical {
			continue
		}
		st := CheckStatus{Status: "up", Critical: d.critical}
		if err := d.checker.Check(ctx); err != nil {
			st.Status = "down"
			st.Message = err.Error()
			switch {
			case d.critical:
				rep.Status = "unhealthy"
			case rep.Status == "healthy":
				rep.Status = "degraded"
			}
		}
		rep.Checks[d.name] = st
	}
	return rep
}

// Handler serves GET /health. Degraded still answers 200.
func (h *Health) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		h.write(w, h.Report(ctx, false))
	}
}

// Ready serves GET /ready and only consults critical dependencies.
func (h *Health) Ready() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		rep := h.Report(ctx, true)
		if rep.Status == "healthy" {
			rep.Status = "ready"
		}
		h.write(w, rep)
	}
}

func (h *Health) write(w http.ResponseWriter, rep HealthReport) {
	code := http.StatusOK
	if rep.Status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(rep)
}

// LivenessHandler answers as long as the process serves HTTP.
func LivenessHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

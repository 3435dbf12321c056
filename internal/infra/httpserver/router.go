package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	appmkt "github.com/bryanwahyu/adpilot/internal/application/marketing"
	domai "github.com/bryanwahyu/adpilot/internal/domain/ai"
	"github.com/bryanwahyu/adpilot/internal/domain/analysis"
	"github.com/bryanwahyu/adpilot/internal/middleware"
)

const maxBodyBytes = 1 << 20

// Pipeline is the application surface the HTTP layer drives.
type Pipeline interface {
	Analyze(ctx context.Context, cmd appmkt.AnalyzeCommand) (appmkt.AnalyzeResult, error)
	Get(ctx context.Context, url string) (appmkt.AnalyzeResult, error)
	Purge(ctx context.Context, url string) error
	ListCampaigns(ctx context.Context, url string) ([]analysis.CampaignRecommendation, error)
	GenerateCampaigns(ctx context.Context, cmd appmkt.GenerateCampaignsCommand) (appmkt.CampaignsResult, error)
	Strategy(ctx context.Context, cmd appmkt.StrategyCommand) (appmkt.StrategyResult, error)
	Export(ctx context.Context, cmd appmkt.ExportCommand) (appmkt.ExportResult, error)
}

type Options struct {
	Log         logrus.FieldLogger
	Metrics     *middleware.Metrics
	Health      *middleware.Health
	APIKeys     map[string]string
	CORSOrigins []string
	RateLimit   int
}

type Router struct {
	svc Pipeline
	log logrus.FieldLogger
}

func NewRouter(svc Pipeline, opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	r := &Router{svc: svc, log: log}
	mux := chi.NewRouter()

	mux.Use(chimw.RequestID)
	mux.Use(chimw.RealIP)
	mux.Use(chimw.Recoverer)
	mux.Use(middleware.Logging(log))
	if opts.Metrics != nil {
		mux.Use(opts.Metrics.Middleware)
	}
	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	mux.Use(middleware.RateLimit(opts.RateLimit))
	mux.Use(middleware.APIKeyAuth(opts.APIKeys))

	health := opts.Health
	if health == nil {
		health = middleware.NewHealth()
	}
	mux.Get("/health", health.Handler())
	mux.Get("/ready", health.Ready())
	mux.Get("/live", middleware.LivenessHandler)
	if opts.Metrics != nil {
		mux.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	mux.Route("/v1", func(rt chi.Router) {
		rt.Post("/analyses", r.wrap(r.handleAnalyze))
		rt.Get("/analyses", r.wrap(r.handleGetAnalysis))
		rt.Delete("/analyses", r.wrap(r.handlePurge))
		rt.Get("/campaigns", r.wrap(r.handleListCampaigns))
		rt.Post("/campaigns/generate", r.wrap(r.handleGenerateCampaigns))
		rt.Post("/strategy", r.wrap(r.handleStrategy))
		rt.Post("/exports", r.wrap(r.handleExport))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// requestError carries a client-facing status for input problems
type requestError struct {
	status int
	msg    string
}

func (e *requestError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &requestError{status: http.StatusBadRequest, msg: fmt.Sprintf(format, args...)}
}

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			status, msg := classify(err)
			if status >= 500 {
				r.log.WithError(err).WithFields(logrus.Fields{
					"path":   req.URL.Path,
					"client": middleware.GetClientFromContext(req.Context()),
				}).Error("request failed")
			}
			writeJSON(w, status, map[string]string{"error": msg})
		}
	}
}

func classify(err error) (int, string) {
	var re *requestError
	switch {
	case errors.As(err, &re):
		return re.status, re.msg
	case errors.Is(err, analysis.ErrInvalidURL):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, analysis.ErrNotFound):
		return http.StatusNotFound, "no analysis stored for this URL"
	case errors.Is(err, analysis.ErrExtractionTooShort):
		return http.StatusUnprocessableEntity, "Extracted content is too short. The website might be blocking access."
	case errors.Is(err, domai.ErrQuotaExceeded):
		return http.StatusTooManyRequests, "ai quota exceeded"
	case errors.Is(err, analysis.ErrFetchFailed):
		return http.StatusBadGateway, "Failed to analyze website."
	case errors.Is(err, domai.ErrModelInvocation),
		errors.Is(err, domai.ErrResponseParse),
		errors.Is(err, analysis.ErrResponseValidation),
		errors.Is(err, appmkt.ErrEmailDelivery):
		return http.StatusBadGateway, err.Error()
	case errors.Is(err, appmkt.ErrEmailDisabled):
		return http.StatusServiceUnavailable, err.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decode(req *http.Request, w http.ResponseWriter, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, req.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return badRequest("invalid request body: %v", err)
	}
	return nil
}

// targetURL normalises and validates a caller supplied URL
func targetURL(raw string) (string, error) {
	u := middleware.NormalizeURL(middleware.SanitizeString(raw))
	if err := middleware.ValidateURL(u); err != nil {
		return "", fmt.Errorf("%w: %v", analysis.ErrInvalidURL, err)
	}
	return u, nil
}

func queryURL(req *http.Request) (string, error) {
	raw := req.URL.Query().Get("url")
	if raw == "" {
		return "", badRequest("url query parameter is required")
	}
	return targetURL(raw)
}

// POST /v1/analyses
// Body: {"url": "...", "force": false}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		URL   string `json:"url"`
		Force bool   `json:"force"`
	}
	if err := decode(req, w, &body); err != nil {
		return err
	}
	u, err := targetURL(body.URL)
	if err != nil {
		return err
	}
	res, err := r.svc.Analyze(req.Context(), appmkt.AnalyzeCommand{URL: u, Force: body.Force})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, res)
	return nil
}

// GET /v1/analyses?url=
func (r *Router) handleGetAnalysis(w http.ResponseWriter, req *http.Request) error {
	u, err := queryURL(req)
	if err != nil {
		return err
	}
	res, err := r.svc.Get(req.Context(), u)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, res)
	return nil
}

// DELETE /v1/analyses?url=
func (r *Router) handlePurge(w http.ResponseWriter, req *http.Request) error {
	u, err := queryURL(req)
	if err != nil {
		return err
	}
	if err := r.svc.Purge(req.Context(), u); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// GET /v1/campaigns?url=
func (r *Router) handleListCampaigns(w http.ResponseWriter, req *http.Request) error {
	u, err := queryURL(req)
	if err != nil {
		return err
	}
	recs, err := r.svc.ListCampaigns(req.Context(), u)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]any{"url": u, "recommendations": recs})
	return nil
}

// POST /v1/campaigns/generate
// Body: {"url": "...", "budget": 5000}
func (r *Router) handleGenerateCampaigns(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		URL    string `json:"url"`
		Budget int    `json:"budget"`
	}
	if err := decode(req, w, &body); err != nil {
		return err
	}
	u, err := targetURL(body.URL)
	if err != nil {
		return err
	}
	if err := middleware.ValidateBudget(body.Budget); err != nil {
		return badRequest("%v", err)
	}
	res, err := r.svc.GenerateCampaigns(req.Context(), appmkt.GenerateCampaignsCommand{URL: u, Budget: body.Budget})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, res)
	return nil
}

// POST /v1/strategy
// Body: {"url": "...", "force": false}
func (r *Router) handleStrategy(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		URL   string `json:"url"`
		Force bool   `json:"force"`
	}
	if err := decode(req, w, &body); err != nil {
		return err
	}
	u, err := targetURL(body.URL)
	if err != nil {
		return err
	}
	res, err := r.svc.Strategy(req.Context(), appmkt.StrategyCommand{URL: u, Force: body.Force})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, res)
	return nil
}

// POST /v1/exports
// Body: {"url": "...", "email": "owner@example.com"}
func (r *Router) handleExport(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		URL   string `json:"url"`
		Email string `json:"email"`
	}
	if err := decode(req, w, &body); err != nil {
		return err
	}
	u, err := targetURL(body.URL)
	if err != nil {
		return err
	}
	if body.Email != "" {
		if err := middleware.ValidateEmail(body.Email); err != nil {
			return badRequest("%v", err)
		}
	}
	res, err := r.svc.Export(req.Context(), appmkt.ExportCommand{URL: u, Email: body.Email})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, res)
	return nil
}

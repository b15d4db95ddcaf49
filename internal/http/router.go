package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jobdeck/jobdeck/internal/service/auth"
	"github.com/jobdeck/jobdeck/internal/service/job"
)

// Router wires HTTP endpoints to services.
type Router struct {
	mux            *http.ServeMux
	logger         *slog.Logger
	auth           auth.Service
	jobs           job.Service
	limiter        RateLimiter
	allowedOrigins []string
	dbHealth       func(context.Context) error

	metricsOnce        sync.Once
	metricsInitialized bool
	requestTotal       *prometheus.CounterVec
	requestLatency     *prometheus.HistogramVec
	rateLimitHits      *prometheus.CounterVec
}

const (
	apiPrefix = "/api/v1"

	rateWindowDefault  = time.Minute
	rateLimitRegister  = 5
	rateLimitLogin     = 12
	rateLimitUserRead  = 120
	rateLimitUserWrite = 60
	healthCheckTimeout = 2 * time.Second
)

// NewRouter assembles routes with dependencies.
func NewRouter(logger *slog.Logger, authSvc auth.Service, jobSvc job.Service, limiter RateLimiter, allowedOrigins []string, dbHealth func(context.Context) error) *Router {
	r := &Router{
		mux:            http.NewServeMux(),
		logger:         logger,
		auth:           authSvc,
		jobs:           jobSvc,
		limiter:        limiter,
		allowedOrigins: allowedOrigins,
		dbHealth:       dbHealth,
	}
	if r.limiter == nil {
		r.limiter = NewMemoryRateLimiter()
	}
	r.initMetrics()
	r.register()
	return r
}

// ServeHTTP delegates to the underlying mux with CORS applied first so
// preflights never hit auth.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.withCORS(r.mux).ServeHTTP(w, req)
}

// Close releases background resources.
func (r *Router) Close() {
	if r.limiter != nil {
		r.limiter.Close()
	}
}

func (r *Router) register() {
	r.mux.HandleFunc("/", r.audit(r.handleRoot))
	r.mux.HandleFunc("/healthz", r.audit(r.handleHealthz))
	r.mux.Handle("/metrics", promhttp.Handler())
	r.mux.HandleFunc(apiPrefix+"/auth/register", r.audit(r.withRateLimit("auth_register", rateLimitRegister, rateWindowDefault, rateLimitKeyIP, r.handleRegister)))
	r.mux.HandleFunc(apiPrefix+"/auth/login", r.audit(r.withRateLimit("auth_login", rateLimitLogin, rateWindowDefault, rateLimitKeyIP, r.handleLogin)))
	r.mux.HandleFunc(apiPrefix+"/jobs", r.audit(r.requireAuth(r.handleJobs)))
	r.mux.HandleFunc(apiPrefix+"/jobs/", r.audit(r.requireAuth(r.handleJobSubroutes)))
}

func (r *Router) handleRoot(w http.ResponseWriter, req *http.Request) {
	if req.URL.Path != "/" {
		r.notFound(w)
		return
	}
	if req.Method != http.MethodGet {
		r.methodNotAllowed(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte("<h1>jobdeck API</h1>"))
}

func (r *Router) handleRegister(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w)
		return
	}
	var payload struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	user, token, err := r.auth.Register(req.Context(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		writeDomainError(r.logger, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"user":  map[string]any{"name": user.Name},
		"token": token,
	})
}

func (r *Router) handleLogin(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w)
		return
	}
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	user, token, err := r.auth.Login(req.Context(), payload.Email, payload.Password)
	if err != nil {
		writeDomainError(r.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user":  map[string]any{"name": user.Name},
		"token": token,
	})
}

func (r *Router) handleJobs(w http.ResponseWriter, req *http.Request) {
	info, ok := authInfoFromContext(req.Context())
	if !ok {
		r.logger.Error("auth context missing for jobs route", "path", req.URL.Path)
		writeError(w, http.StatusInternalServerError, "authorization context missing")
		return
	}
	switch req.Method {
	case http.MethodGet:
		if !r.allowUser(w, req, "jobs_list", rateLimitUserRead) {
			return
		}
		jobs, err := r.jobs.ListByOwner(req.Context(), info.UserID)
		if err != nil {
			writeDomainError(r.logger, w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"jobs":  jobs,
			"Count": len(jobs),
		})
	case http.MethodPost:
		if !r.allowUser(w, req, "jobs_create", rateLimitUserWrite) {
			return
		}
		var payload job.Input
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		created, err := r.jobs.Create(req.Context(), info.UserID, payload)
		if err != nil {
			writeDomainError(r.logger, w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"job": created})
	default:
		r.methodNotAllowed(w)
	}
}

func (r *Router) handleJobSubroutes(w http.ResponseWriter, req *http.Request) {
	trimmed := strings.TrimPrefix(req.URL.Path, apiPrefix+"/jobs/")
	if trimmed == "" || strings.Contains(trimmed, "/") {
		r.notFound(w)
		return
	}
	if trimmed == "stats" {
		r.handleJobStats(w, req)
		return
	}
	r.handleJobByID(w, req, trimmed)
}

func (r *Router) handleJobStats(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		r.methodNotAllowed(w)
		return
	}
	info, ok := authInfoFromContext(req.Context())
	if !ok {
		r.logger.Error("auth context missing for stats route", "path", req.URL.Path)
		writeError(w, http.StatusInternalServerError, "authorization context missing")
		return
	}
	if !r.allowUser(w, req, "jobs_stats", rateLimitUserRead) {
		return
	}
	counts, err := r.jobs.Stats(req.Context(), info.UserID)
	if err != nil {
		writeDomainError(r.logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stats": counts})
}

func (r *Router) handleJobByID(w http.ResponseWriter, req *http.Request, jobID string) {
	info, ok := authInfoFromContext(req.Context())
	if !ok {
		r.logger.Error("auth context missing for job route", "path", req.URL.Path)
		writeError(w, http.StatusInternalServerError, "authorization context missing")
		return
	}
	switch req.Method {
	case http.MethodGet:
		if !r.allowUser(w, req, "jobs_get", rateLimitUserRead) {
			return
		}
		found, err := r.jobs.GetByIDAndOwner(req.Context(), jobID, info.UserID)
		if err != nil {
			writeDomainError(r.logger, w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"job": found})
	case http.MethodPatch:
		if !r.allowUser(w, req, "jobs_update", rateLimitUserWrite) {
			return
		}
		var payload job.Input
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		updated, err := r.jobs.Update(req.Context(), jobID, info.UserID, payload)
		if err != nil {
			writeDomainError(r.logger, w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"job": updated})
	case http.MethodDelete:
		if !r.allowUser(w, req, "jobs_delete", rateLimitUserWrite) {
			return
		}
		if err := r.jobs.Delete(req.Context(), jobID, info.UserID); err != nil {
			writeDomainError(r.logger, w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	default:
		r.methodNotAllowed(w)
	}
}

// allowUser applies a user-keyed rate limit inside method dispatch, for
// routes where read and write tiers differ.
func (r *Router) allowUser(w http.ResponseWriter, req *http.Request, route string, limit int) bool {
	key := r.rateLimitKeyUser(req)
	if key == "" {
		key = rateLimitKeyIP(req)
	}
	decision := r.limiter.Allow(key, limit, rateWindowDefault)
	r.applyRateHeaders(w, limit, decision)
	if !decision.allowed {
		r.recordRateLimitHit(route, rateMetricKey(key))
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return false
	}
	return true
}

func (r *Router) handleHealthz(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		r.methodNotAllowed(w)
		return
	}
	components := make(map[string]any)
	status := "ok"
	if r.dbHealth != nil {
		ctx, cancel := context.WithTimeout(req.Context(), healthCheckTimeout)
		defer cancel()
		if err := r.dbHealth(ctx); err != nil {
			status = "degraded"
			components["database"] = map[string]any{
				"status": "down",
				"error":  err.Error(),
			}
		} else {
			components["database"] = map[string]any{"status": "up"}
		}
	}
	payload := map[string]any{
		"status":     status,
		"components": components,
		"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
	}
	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, payload)
}

func (r *Router) methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func (r *Router) notFound(w http.ResponseWriter) {
	writeError(w, http.StatusNotFound, "not found")
}

package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"sdgdash.org/internal/obs"
	"sdgdash.org/internal/sdg"
	"sdgdash.org/internal/session"
)

// ReadyProbe pings the credential database.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// API is the HTTP layer serving the dashboard front-end.
type API struct {
	mux        *http.ServeMux
	svc        sdg.Service
	sess       *session.Manager
	readyProbe ReadyProbe
	version    string

	rlBurst     int
	rlPerSecond int
}

// Option adjusts API construction.
type Option func(*API)

// WithRateLimit tunes the per-IP limiter applied to every request.
func WithRateLimit(burst, perSecond int) Option {
	return func(a *API) {
		if burst > 0 && perSecond > 0 {
			a.rlBurst, a.rlPerSecond = burst, perSecond
		}
	}
}

func New(svc sdg.Service, sess *session.Manager, rp ReadyProbe, version string, opts ...Option) *API {
	a := &API{
		mux:         http.NewServeMux(),
		svc:         svc,
		sess:        sess,
		readyProbe:  rp,
		version:     version,
		rlBurst:     20,
		rlPerSecond: 10,
	}
	for _, opt := range opts {
		opt(a)
	}

	// health/ready/info
	a.mux.HandleFunc("/healthz", a.Healthz)
	a.mux.HandleFunc("/readyz", a.Ready)
	a.mux.HandleFunc("/v1/info", a.Info)

	// session
	a.mux.HandleFunc("/v1/auth/login", a.handleLogin)
	a.mux.HandleFunc("/v1/auth/logout", a.handleLogout)
	a.mux.HandleFunc("/v1/auth/session", a.handleSession)

	// activity records
	a.mux.HandleFunc("/v1/activities", a.handleActivitiesCollection)
	a.mux.HandleFunc("/v1/activities/", a.handleActivityResource)

	// goals and reports
	a.mux.HandleFunc("/v1/sdg", a.handleGoals)
	a.mux.HandleFunc("/v1/sdg/", a.handleGoalResource)
	a.mux.HandleFunc("/v1/reports/summary", a.handleSummary)
	a.mux.HandleFunc("/v1/reports/totals", a.handleTotals)
	a.mux.HandleFunc("/v1/benchmark", a.handleBenchmark)

	// entry-form reference data
	a.mux.HandleFunc("/v1/metadata", a.handleMetadata)
	a.mux.HandleFunc("/v1/metadata/researchers", a.handleResearchers)

	// Prometheus metrics
	a.mux.Handle("/metrics", obs.Handler())

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return a
}

// Handler returns the fully wrapped http.Handler for the server.
func (a *API) Handler() http.Handler {
	var h http.Handler = a.mux
	h = obs.Instrument(h)
	h = LoggingJSON(h)
	h = MaxBodyBytes(h, 1<<20)
	h = SecurityHeaders(h)
	h = CORS(h)
	h = RateLimit(h, a.rlBurst, a.rlPerSecond)
	h = RequestID(h)
	return h
}

// --- Handlers ---

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "sdgdash-api",
		"version": a.version,
	})
}

func (a *API) Ready(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}

func (a *API) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "sdgdash-api",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": a.version,
	})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	payload := map[string]any{
		"error": msg,
	}
	if rid := RequestIDFromContext(r.Context()); rid != "" {
		payload["request_id"] = rid
	}
	writeJSON(w, code, payload)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	reader := http.MaxBytesReader(w, r.Body, 1<<20)
	defer reader.Close()
	dec := json.NewDecoder(reader)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return errors.New("unexpected data after JSON body")
		}
		return err
	}
	return nil
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

func parsePositiveInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, session.ErrExpired),
		errors.Is(err, session.ErrInvalidCredentials),
		errors.Is(err, session.ErrRefreshRejected),
		errors.Is(err, session.ErrNoRefreshToken):
		writeError(w, r, http.StatusUnauthorized, "session expired, sign in again")
	case errors.Is(err, sdg.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "resource not found")
	case errors.Is(err, sdg.ErrInvalidGoal),
		errors.Is(err, sdg.ErrNoGoals),
		errors.Is(err, sdg.ErrUnknownDepartment),
		errors.Is(err, sdg.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
	default:
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

package httpapi

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gorilla/mux"

	app "github.com/R3E-Network/exercise_tracker/internal/app"
	"github.com/R3E-Network/exercise_tracker/internal/app/metrics"
	"github.com/R3E-Network/exercise_tracker/internal/app/services/exercises"
	"github.com/R3E-Network/exercise_tracker/internal/errors"
	"github.com/R3E-Network/exercise_tracker/internal/middleware"
	"github.com/R3E-Network/exercise_tracker/pkg/logger"
)

// Options configures the HTTP surface around the application services.
type Options struct {
	Logger *logger.Logger
	// Audit receives one entry per routed request. Nil keeps an in-memory
	// log of the last 200 requests.
	Audit *AuditLog
	// CORSOrigins defaults to every origin.
	CORSOrigins []string
	// RateLimiter is optional; nil disables throttling.
	RateLimiter *middleware.RateLimiter
	// StaticDir is served under /public/ and IndexFile at /, when they exist.
	StaticDir string
	IndexFile string
}

// handler bundles HTTP endpoints for the application services.
type handler struct {
	app   *app.Application
	log   *logger.Logger
	audit *AuditLog
}

// NewHandler returns the exercise tracker API wrapped in its middleware chain.
func NewHandler(application *app.Application, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = logger.NewDefault("http")
	}
	if opts.Audit == nil {
		opts.Audit = newAuditLog(defaultAuditCapacity)
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}

	h := &handler{app: application, log: opts.Logger, audit: opts.Audit}

	router := mux.NewRouter()
	router.Use(metrics.InstrumentHandler, h.audit.middleware)
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeErrorMessage(w, http.StatusNotFound, "not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/users", h.createUser).Methods(http.MethodPost)
	api.HandleFunc("/users", h.listUsers).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}/exercises", h.addExercise).Methods(http.MethodPost)
	api.HandleFunc("/users/{id}/logs", h.exerciseLog).Methods(http.MethodGet)

	router.HandleFunc("/healthz", h.health).Methods(http.MethodGet)
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/system/audit", h.systemAudit).Methods(http.MethodGet)
	h.mountStatic(router, opts.StaticDir, opts.IndexFile)

	var handler http.Handler = router
	if opts.RateLimiter != nil {
		handler = opts.RateLimiter.Handler(handler)
	}
	handler = middleware.NewCORSMiddleware(opts.CORSOrigins).Handler(handler)
	handler = middleware.Recovery(opts.Logger)(handler)
	return middleware.NewTracingMiddleware(opts.Logger).Handler(handler)
}

func (h *handler) createUser(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCreateUser(w, r)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	usr, err := h.app.Users.Create(r.Context(), string(req.Username))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(usr))
}

func (h *handler) listUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.app.Users.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserList(list))
}

func (h *handler) addExercise(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	req, err := decodeAddExercise(w, r)
	if err != nil {
		// An unknown user is reported ahead of a malformed body.
		if _, lookupErr := h.app.Users.Get(r.Context(), userID); lookupErr != nil {
			h.writeError(w, r, lookupErr)
			return
		}
		writeErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	usr, ex, err := h.app.Exercises.Add(r.Context(), userID, exercises.AddInput{
		Description: string(req.Description),
		Duration:    string(req.Duration),
		Date:        string(req.Date),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toExerciseResponse(usr, ex))
}

func (h *handler) exerciseLog(w http.ResponseWriter, r *http.Request) {
	result, err := h.app.Exercises.Log(r.Context(), mux.Vars(r)["id"], exercises.LogParams{
		From:  queryValue(r, "from"),
		To:    queryValue(r, "to"),
		Limit: queryValue(r, "limit"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toLogResponse(result))
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) systemAudit(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := queryValue(r, "limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeErrorMessage(w, http.StatusBadRequest, "Limit must be a positive number")
			return
		}
		limit = n
	}
	writeJSON(w, http.StatusOK, h.audit.listLimit(limit))
}

// mountStatic serves the front-end when its files are present on disk.
func (h *handler) mountStatic(router *mux.Router, dir, index string) {
	if index != "" {
		if info, err := os.Stat(index); err == nil && !info.IsDir() {
			router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
				http.ServeFile(w, r, index)
			}).Methods(http.MethodGet, http.MethodHead)
		} else {
			h.log.WithField("index", index).Debug("index file not found; front-end disabled")
		}
	}
	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			files := http.StripPrefix("/public/", http.FileServer(http.Dir(filepath.Clean(dir))))
			router.PathPrefix("/public/").Handler(files).Methods(http.MethodGet, http.MethodHead)
		}
	}
}

// writeError maps service errors onto their status and message. Anything
// unclassified is logged and hidden behind a generic 500.
func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	serviceErr := errors.GetServiceError(err)
	if serviceErr == nil || serviceErr.HTTPStatus >= http.StatusInternalServerError {
		h.log.WithContext(r.Context()).WithError(err).
			WithField("path", r.URL.Path).
			Error("request failed")
		writeErrorMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeErrorMessage(w, serviceErr.HTTPStatus, serviceErr.Message)
}

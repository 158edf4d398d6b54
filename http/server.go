package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/fwojciec/prospect"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Server defaults.
const (
	DefaultAddr            = "127.0.0.1:8080"
	DefaultRecentJobs      = 10
	DefaultShutdownTimeout = 10 * time.Second
)

// Server exposes contact search and the contact store over a JSON API.
type Server struct {
	router   chi.Router
	finder   prospect.Finder
	contacts prospect.ContactService
	jobs     prospect.JobService

	logger     *slog.Logger
	metrics    http.Handler
	middleware []func(http.Handler) http.Handler
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the request logger. Defaults to a discard logger.
func WithLogger(l *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = l
	}
}

// WithMetricsHandler serves h at /metrics.
func WithMetricsHandler(h http.Handler) ServerOption {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithMiddleware adds middleware in front of every route.
func WithMiddleware(mw ...func(http.Handler) http.Handler) ServerOption {
	return func(s *Server) {
		s.middleware = append(s.middleware, mw...)
	}
}

// NewServer constructs a Server with middleware and routes.
func NewServer(finder prospect.Finder, contacts prospect.ContactService, jobs prospect.JobService, opts ...ServerOption) *Server {
	s := &Server{
		finder:   finder,
		contacts: contacts,
		jobs:     jobs,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoverMiddleware)
	r.Use(s.middleware...)

	r.Get("/healthz", s.healthz)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/scrape", s.scrape)
		r.Get("/scrape", s.getJobs)
		r.Get("/contacts", s.listContacts)
		r.Post("/contacts", s.createContact)
		r.Put("/contacts/{id}", s.updateContact)
		r.Delete("/contacts/{id}", s.deleteContact)
	})

	s.router = r
	return s
}

// Handler returns the Router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server started", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("http server stopped")
	return nil
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type scrapeRequest struct {
	Query      string `json:"query"`
	Company    string `json:"company"`
	Domain     string `json:"domain"`
	MaxResults int    `json:"maxResults"`
	Founder    bool   `json:"founder"`
}

type scrapeResponse struct {
	Success    bool                `json:"success"`
	JobID      string              `json:"jobId,omitempty"`
	Contacts   []*prospect.Contact `json:"contacts"`
	TotalFound int                 `json:"totalFound"`
	Errors     []string            `json:"errors"`
	Error      string              `json:"error,omitempty"`
}

func (s *Server) scrape(w http.ResponseWriter, r *http.Request) {
	var req scrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}
	if req.MaxResults < 0 {
		writeError(w, http.StatusBadRequest, "maxResults must not be negative")
		return
	}

	subject := prospect.Subject{Name: req.Query, Company: req.Company, Domain: req.Domain}
	job, contacts, err := s.finder.Find(r.Context(), subject, prospect.FindOptions{
		MaxResults: req.MaxResults,
		Founder:    req.Founder,
	})

	resp := scrapeResponse{Contacts: contacts, Errors: []string{}}
	if contacts == nil {
		resp.Contacts = []*prospect.Contact{}
	}
	if job != nil {
		resp.JobID = job.ID
		resp.TotalFound = job.TotalFound
		if job.Errors != nil {
			resp.Errors = job.Errors
		}
	}
	if err != nil {
		if job == nil {
			s.writeErr(w, err)
			return
		}
		resp.Error = prospect.ErrorMessage(err)
		writeJSON(w, ErrorStatusCode(prospect.ErrorCode(err)), resp)
		return
	}

	resp.Success = true
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getJobs(w http.ResponseWriter, r *http.Request) {
	if id := r.URL.Query().Get("jobId"); id != "" {
		job, err := s.jobs.FindJobByID(r.Context(), id)
		if err != nil {
			s.writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"job": job})
		return
	}

	jobs, err := s.jobs.FindJobs(r.Context(), prospect.JobFilter{Limit: DefaultRecentJobs})
	if err != nil {
		s.writeErr(w, err)
		return
	}
	if jobs == nil {
		jobs = []*prospect.Job{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
}

type listContactsResponse struct {
	Contacts []*prospect.Contact `json:"contacts"`
	Total    int                 `json:"total"`
	HasMore  bool                `json:"hasMore"`
}

func (s *Server) listContacts(w http.ResponseWriter, r *http.Request) {
	filter, err := contactFilterFromQuery(r)
	if err != nil {
		s.writeErr(w, err)
		return
	}

	contacts, total, err := s.contacts.FindContacts(r.Context(), filter)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	if contacts == nil {
		contacts = []*prospect.Contact{}
	}
	writeJSON(w, http.StatusOK, listContactsResponse{
		Contacts: contacts,
		Total:    total,
		HasMore:  filter.Offset+len(contacts) < total,
	})
}

func contactFilterFromQuery(r *http.Request) (prospect.ContactFilter, error) {
	q := r.URL.Query()
	var filter prospect.ContactFilter

	optional := func(key string) *string {
		if v := q.Get(key); v != "" {
			return &v
		}
		return nil
	}
	filter.Query = optional("q")
	filter.Company = optional("company")
	filter.Location = optional("location")
	filter.JobID = optional("jobId")
	filter.HasEmail = q.Get("hasEmail") == "true"
	filter.HasPhone = q.Get("hasPhone") == "true"

	var err error
	if filter.Limit, err = intParam(q.Get("limit"), "limit"); err != nil {
		return filter, err
	}
	if filter.Offset, err = intParam(q.Get("offset"), "offset"); err != nil {
		return filter, err
	}
	return filter, nil
}

func intParam(v, name string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, prospect.Errorf(prospect.EINVALID, "%s must be a non-negative integer", name)
	}
	return n, nil
}

func (s *Server) createContact(w http.ResponseWriter, r *http.Request) {
	var contact prospect.Contact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if contact.Source == "" {
		contact.Source = "manual"
	}
	if contact.Confidence == 0 {
		contact.Confidence = 1
	}
	contact.JobID = ""

	if err := s.contacts.CreateContact(r.Context(), &contact); err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"contact": &contact})
}

func (s *Server) updateContact(w http.ResponseWriter, r *http.Request) {
	var upd prospect.ContactUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	contact, err := s.contacts.UpdateContact(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"contact": contact})
}

func (s *Server) deleteContact(w http.ResponseWriter, r *http.Request) {
	if err := s.contacts.DeleteContact(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ErrorStatusCode maps an application error code to an HTTP status.
func ErrorStatusCode(code string) int {
	switch code {
	case prospect.EINVALID:
		return http.StatusBadRequest
	case prospect.ENOTFOUND:
		return http.StatusNotFound
	case prospect.ECONFLICT:
		return http.StatusConflict
	case prospect.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeErr writes err with its mapped status. Internal errors are logged and
// their details withheld.
func (s *Server) writeErr(w http.ResponseWriter, err error) {
	code := prospect.ErrorCode(err)
	if code == prospect.EINTERNAL {
		s.logger.Error("request failed", "err", err)
	}
	writeError(w, ErrorStatusCode(code), prospect.ErrorMessage(err))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Default().Error("write JSON failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type requestIDKey struct{}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)
		reqID, _ := r.Context().Value(requestIDKey{}).(string)
		s.logger.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.status,
			"duration", time.Since(start),
			"request_id", reqID,
		)
	})
}

func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", "err", rec)
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

package httpadapter

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"

	"esgwatch/internal/domain"
	"esgwatch/internal/metrics"
	"esgwatch/internal/ports"
	"esgwatch/internal/store"
	"esgwatch/internal/timeline"
)

// Server serves the dashboard views as JSON.
type Server struct {
	overview  ports.OverviewService
	incidents ports.IncidentService
	history   ports.HistoryService
	taxonomy  ports.TaxonomyService
	refresher ports.Refresher
	state     *store.State
	metrics   *metrics.Collector
	log       *zap.Logger

	// CORSOrigins is empty for same-origin deployments.
	CORSOrigins []string
}

func New(
	overview ports.OverviewService,
	incidents ports.IncidentService,
	history ports.HistoryService,
	taxonomy ports.TaxonomyService,
	refresher ports.Refresher,
	state *store.State,
	m *metrics.Collector,
	log *zap.Logger,
) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		overview:  overview,
		incidents: incidents,
		history:   history,
		taxonomy:  taxonomy,
		refresher: refresher,
		state:     state,
		metrics:   m,
		log:       log,
	}
}

func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(accessLog(s.log))
	if s.metrics != nil {
		r.Use(observe(s.metrics))
	}
	if len(s.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", s.getHealthz)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	r.Route("/api", func(r chi.Router) {
		r.Get("/status", s.getStatus)
		r.Get("/overview", s.getOverview)
		r.Get("/incidents", s.getIncidents)
		r.Get("/incidents/{id}", s.getIncident)
		r.Get("/critical-incidents", s.getCritical)
		r.Get("/history", s.getHistory)
		r.Get("/taxonomy/categories", s.getCategories)
		r.Get("/taxonomy/severities", s.getSeverities)
		r.Post("/refresh", s.postRefresh)
	})
	return r
}

func (s *Server) getHealthz(w http.ResponseWriter, r *http.Request) {
	Success(w, http.StatusOK, map[string]string{"status": "ok"})
}

type statusResponse struct {
	Loading     bool                            `json:"loading"`
	Error       string                          `json:"error,omitempty"`
	ErrorSource ports.Resource                  `json:"errorSource,omitempty"`
	Sources     map[ports.Resource]store.Status `json:"sources"`
}

func (s *Server) status() statusResponse {
	snap := s.state.Snapshot()
	resp := statusResponse{Loading: snap.Loading(), Sources: snap.Status}
	if res, msg, ok := snap.FirstError(); ok {
		resp.Error, resp.ErrorSource = msg, res
	}
	return resp
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	Success(w, http.StatusOK, s.status())
}

func (s *Server) getOverview(w http.ResponseWriter, r *http.Request) {
	o, err := s.overview.Overview(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	Success(w, http.StatusOK, o)
}

func (s *Server) getIncidents(w http.ResponseWriter, r *http.Request) {
	f, selected, err := bindTimelineParams(r)
	if err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}
	page, err := s.incidents.Timeline(r.Context(), f, selected)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	Success(w, http.StatusOK, page)
}

func (s *Server) getIncident(w http.ResponseWriter, r *http.Request) {
	d, err := s.incidents.Detail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	Success(w, http.StatusOK, d)
}

func (s *Server) getCritical(w http.ResponseWriter, r *http.Request) {
	rows, err := s.incidents.Critical(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	Success(w, http.StatusOK, map[string]any{"criticalIncidents": rows})
}

func (s *Server) getHistory(w http.ResponseWriter, r *http.Request) {
	points, err := s.history.History(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	Success(w, http.StatusOK, map[string]any{"data": points})
}

func (s *Server) getCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.taxonomy.Categories(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	Success(w, http.StatusOK, map[string]any{"categories": cats})
}

func (s *Server) getSeverities(w http.ResponseWriter, r *http.Request) {
	sevs, err := s.taxonomy.Severities(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	Success(w, http.StatusOK, map[string]any{"severityLevels": sevs})
}

// postRefresh queues a reload, or with wait=true runs it inline and reports
// the resulting status.
func (s *Server) postRefresh(w http.ResponseWriter, r *http.Request) {
	var wait *bool
	var timeout *int
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "wait", q, &wait); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "timeout", q, &timeout); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if wait == nil || !*wait {
		s.refresher.Trigger()
		Success(w, http.StatusAccepted, map[string]string{"status": "queued"})
		return
	}

	secs := 30
	if timeout != nil && *timeout > 0 {
		secs = *timeout
	}
	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(secs)*time.Second)
	defer cancel()
	runID := s.refresher.LoadAll(ctx)
	if runID == "" {
		Error(w, http.StatusServiceUnavailable, "refresh already running")
		return
	}
	Success(w, http.StatusOK, struct {
		Run string `json:"run"`
		statusResponse
	}{Run: runID, statusResponse: s.status()})
}

// fail maps service errors onto responses: a document that is still loading
// is 503, one that failed to load is 502 with its source named.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var se *ports.SourceError
	switch {
	case errors.Is(err, ports.ErrLoading):
		Error(w, http.StatusServiceUnavailable, "loading")
	case errors.As(err, &se):
		SourceFailure(w, se)
	case errors.Is(err, ports.ErrNotFound):
		Error(w, http.StatusNotFound, "not found")
	default:
		s.log.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("requestID", chimiddleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		Error(w, http.StatusInternalServerError, "internal error")
	}
}

// bindTimelineParams reads start, end, title, category, subcategory,
// severity and selected from the query string.
func bindTimelineParams(r *http.Request) (timeline.Filter, string, error) {
	q := r.URL.Query()
	var f timeline.Filter
	var start, end, title, category, subcategory, severity, selected *string
	params := []struct {
		name string
		dest **string
	}{
		{"start", &start},
		{"end", &end},
		{"title", &title},
		{"category", &category},
		{"subcategory", &subcategory},
		{"severity", &severity},
		{"selected", &selected},
	}
	for _, p := range params {
		if err := runtime.BindQueryParameter("form", true, false, p.name, q, p.dest); err != nil {
			return f, "", err
		}
	}

	var err error
	if f.Start, err = parseBound("start", start); err != nil {
		return f, "", err
	}
	if f.End, err = parseBound("end", end); err != nil {
		return f, "", err
	}
	f.Title = deref(title)
	f.Category = deref(category)
	f.Subcategory = deref(subcategory)
	f.Severity = deref(severity)
	return f, deref(selected), nil
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func parseBound(name string, v *string) (*time.Time, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	t, err := domain.ParseDate(*v)
	if err != nil {
		return nil, errors.New("invalid " + name + " date " + strconv.Quote(*v))
	}
	return &t, nil
}

// Package httpapi exposes the service's outbound HTTP surface: health,
// readiness, metrics, and the incident catalog and detail endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dpatangia0001/IGNIS-CAC-sub000/internal/catalog"
	"github.com/dpatangia0001/IGNIS-CAC-sub000/internal/domain"
	"github.com/dpatangia0001/IGNIS-CAC-sub000/internal/extract"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// DetailProvider serves extracted detail records by page URL.
type DetailProvider interface {
	Get(ctx context.Context, url string) (domain.IncidentDetail, bool)
}

// PageFetcher retrieves raw detail-page markup, used for the per-request
// evacuation zone computation.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) ([]byte, error)
}

// Server exposes the HTTP API.
type Server struct {
	httpServer *http.Server
	store      *catalog.Store
	details    DetailProvider
	pages      PageFetcher
	logger     *slog.Logger
}

// NewServer creates an HTTP server with health, metrics, and incident routes.
func NewServer(addr string, store *catalog.Store, details DetailProvider, pages PageFetcher, ready ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		store:   store,
		details: details,
		pages:   pages,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/incidents", s.handleIncidents)
	mux.HandleFunc("GET /api/incidents/nearby", s.handleNearby)
	mux.HandleFunc("GET /api/incidents/detail", s.handleDetail)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// incidentsResponse is the catalog payload: the merged incident list plus the
// coarse pipeline status, so the client can render stale data with a banner
// instead of an empty screen.
type incidentsResponse struct {
	Incidents []domain.Incident `json:"incidents"`
	catalog.Status
}

func (s *Server) handleIncidents(w http.ResponseWriter, _ *http.Request) {
	incidents := s.store.Snapshot()
	if incidents == nil {
		incidents = []domain.Incident{}
	}
	writeJSON(w, http.StatusOK, incidentsResponse{
		Incidents: incidents,
		Status:    s.store.Status(),
	})
}

func (s *Server) handleNearby(w http.ResponseWriter, r *http.Request) {
	lat, err1 := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, err2 := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err1 != nil || err2 != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "lat and lon query parameters are required",
		})
		return
	}

	fires := domain.NearbyFires(s.store.Snapshot(), lat, lon)
	if fires == nil {
		fires = []domain.NearbyFire{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"fires": fires})
}

// detailResponse bundles the cached detail record with the evacuation zone
// mapping. Zones are computed from the live page on every request; a failed
// page fetch drops the zones, never the detail.
type detailResponse struct {
	Detail domain.IncidentDetail `json:"detail"`
	Zones  *domain.EvacZones     `json:"zones,omitempty"`
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "url query parameter is required",
		})
		return
	}

	detail, ok := s.details.Get(r.Context(), url)
	if !ok {
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error": "incident detail is unavailable",
		})
		return
	}

	resp := detailResponse{Detail: detail}
	if markup, err := s.pages.FetchPage(r.Context(), url); err == nil {
		zones := extract.EvacuationZones(markup)
		if zones.Orders != nil || zones.Warnings != nil {
			resp.Zones = &zones
		}
	} else {
		s.logger.Debug("zone fetch failed", "url", url, "error", err)
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}

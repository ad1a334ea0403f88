package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"sync"
	"time"

	"dumptrac/internal/apiclient"
	"dumptrac/internal/dashboard"
	"dumptrac/internal/export"
	"dumptrac/internal/middleware"
	"dumptrac/internal/services"
	"dumptrac/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

// API is everything the pages need from the backend.
type API interface {
	ReportAPI
	dashboard.Source
}

// Geocoder suggests a location description for coordinates.
type Geocoder interface {
	Enabled() bool
	ReverseGeocode(ctx context.Context, lat, lng float64) (*services.Address, error)
}

type Config struct {
	Dashboard *dashboard.Dashboard
	Geocoder  Geocoder
	// NewAPI builds the backend client for a base URL. Defaults to an
	// apiclient.Client on http.DefaultClient.
	NewAPI func(baseURL string) API
	Log    zerolog.Logger
}

// Server renders the report form and the dashboard.
type Server struct {
	dash     *dashboard.Dashboard
	geocoder Geocoder
	newAPI   func(baseURL string) API
	pages    map[string]*template.Template
	log      zerolog.Logger

	mu      sync.Mutex
	clients map[string]API
}

func NewServer(cfg Config) (*Server, error) {
	if cfg.Dashboard == nil {
		return nil, errors.New("web: dashboard is required")
	}

	newAPI := cfg.NewAPI
	if newAPI == nil {
		newAPI = func(baseURL string) API {
			return apiclient.New(baseURL, http.DefaultClient)
		}
	}

	pages, err := parsePages()
	if err != nil {
		return nil, err
	}

	return &Server{
		dash:     cfg.Dashboard,
		geocoder: cfg.Geocoder,
		newAPI:   newAPI,
		pages:    pages,
		log:      cfg.Log,
		clients:  make(map[string]API),
	}, nil
}

func parsePages() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template)
	for _, name := range []string{"index.html", "dashboard.html"} {
		tmpl, err := template.New(name).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return pages, nil
}

// Routes wires the page handlers.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(s.log))
	r.Use(chimiddleware.Recoverer)

	r.Get("/", s.index())
	r.Post("/report", s.submitReport())

	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/", s.showDashboard())
		r.Post("/refresh", s.refreshDashboard())
		r.Post("/reports/{id}/clear", s.clearReport())
		r.Get("/markers", s.markers())
		r.Get("/export.xlsx", s.exportXLSX())
		r.Get("/export.pdf", s.exportPDF())
	})

	r.Get("/geocode/reverse", s.reverseGeocode())

	return r
}

// apiFor returns the backend client matching the host the page was served
// from. Clients are cached per base URL.
func (s *Server) apiFor(r *http.Request) API {
	baseURL := apiclient.BaseURLForHost(r.Host)

	s.mu.Lock()
	defer s.mu.Unlock()

	api, ok := s.clients[baseURL]
	if !ok {
		api = s.newAPI(baseURL)
		s.clients[baseURL] = api
		s.log.Info().Str("base_url", baseURL).Str("host", r.Host).Msg("🔗 backend client created")
	}
	return api
}

type indexPage struct {
	Status    string
	Location  string
	Latitude  string
	Longitude string
	Geocoding bool
}

type dashboardPage struct {
	Rows        []dashboard.Row
	MapSettings dashboard.Settings
	RefreshedAt string
	Alert       string
}

func (s *Server) index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := s.newIndexPage()
		if r.URL.Query().Get("submitted") == "1" {
			page.Status = msgSubmitted
		}
		s.render(w, http.StatusOK, "index.html", page)
	}
}

func (s *Server) newIndexPage() indexPage {
	return indexPage{Geocoding: s.geocoder != nil && s.geocoder.Enabled()}
}

func (s *Server) submitReport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form", http.StatusBadRequest)
			return
		}

		page := s.newIndexPage()
		page.Location = r.PostFormValue("location")
		page.Latitude = r.PostFormValue("lat")
		page.Longitude = r.PostFormValue("lng")

		sub, err := ParseSubmission(page.Location, page.Latitude, page.Longitude)
		if err != nil {
			page.Status = "Error: " + err.Error()
			s.render(w, http.StatusBadRequest, "index.html", page)
			return
		}

		api := s.apiFor(r)
		report, err := SubmitReport(r.Context(), api, sub)
		if err != nil {
			s.log.Warn().Err(err).Str("location", sub.Location).Msg("report submission failed")
			page.Status = "Error: " + userMessage(err)
			s.render(w, failureStatus(err), "index.html", page)
			return
		}

		s.log.Info().
			Int64("report_id", report.ID).
			Int64("bin_id", report.BinID).
			Str("location", sub.Location).
			Msg("✅ Report submitted")

		s.dash.Refresh(r.Context(), api)

		http.Redirect(w, r, "/?submitted=1", http.StatusSeeOther)
	}
}

// showDashboard refreshes on every load, except right after a clear whose
// handler already refreshed.
func (s *Server) showDashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := s.dash.Current()
		if r.URL.Query().Get("cleared") == "" || view.RefreshedAt.IsZero() {
			view = s.dash.Refresh(r.Context(), s.apiFor(r))
		}
		s.renderDashboard(w, http.StatusOK, view, "")
	}
}

func (s *Server) refreshDashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	}
}

func (s *Server) clearReport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			s.renderDashboard(w, http.StatusBadRequest, s.dash.Current(), "Error clearing report: Invalid report id")
			return
		}

		view, err := s.dash.Clear(r.Context(), s.apiFor(r), id)
		if err != nil {
			s.log.Error().Err(err).Int64("report_id", id).Msg("failed to clear report")
			s.renderDashboard(w, failureStatus(err), view, "Error clearing report: "+userMessage(err))
			return
		}

		s.log.Info().Int64("report_id", id).Int("rows", len(view.Rows)).Msg("🧹 Report cleared")
		http.Redirect(w, r, fmt.Sprintf("/dashboard?cleared=%d", id), http.StatusSeeOther)
	}
}

func (s *Server) markers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.dash.Map().Ensure()

		body, err := s.dash.Map().FeatureCollection().MarshalJSON()
		if err != nil {
			s.log.Error().Err(err).Msg("failed to encode markers")
			utils.Error(w, http.StatusInternalServerError, "Failed to encode markers")
			return
		}

		w.Header().Set("Content-Type", "application/geo+json")
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}
}

func (s *Server) exportXLSX() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := s.currentView(r)
		data, err := export.XLSX(view.Rows, time.Now())
		if err != nil {
			s.log.Error().Err(err).Msg("xlsx export failed")
			http.Error(w, "Export failed", http.StatusInternalServerError)
			return
		}
		writeAttachment(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "dumptrac-reports.xlsx", data)
	}
}

func (s *Server) exportPDF() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := s.currentView(r)
		data, err := export.PDF(view.Rows, time.Now())
		if err != nil {
			s.log.Error().Err(err).Msg("pdf export failed")
			http.Error(w, "Export failed", http.StatusInternalServerError)
			return
		}
		writeAttachment(w, "application/pdf", "dumptrac-reports.pdf", data)
	}
}

// currentView exports what the dashboard last showed, loading it first when
// nothing has been rendered yet.
func (s *Server) currentView(r *http.Request) dashboard.View {
	view := s.dash.Current()
	if view.RefreshedAt.IsZero() {
		view = s.dash.Refresh(r.Context(), s.apiFor(r))
	}
	return view
}

func writeAttachment(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) reverseGeocode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.geocoder == nil || !s.geocoder.Enabled() {
			utils.Error(w, http.StatusServiceUnavailable, "Geocoding is not configured")
			return
		}

		lat, okLat := parseFinite(r.URL.Query().Get("lat"))
		lng, okLng := parseFinite(r.URL.Query().Get("lng"))
		if !okLat || !okLng {
			utils.Error(w, http.StatusBadRequest, "lat and lng are required")
			return
		}

		addr, err := s.geocoder.ReverseGeocode(r.Context(), lat, lng)
		if err != nil {
			s.log.Warn().Err(err).Float64("lat", lat).Float64("lng", lng).Msg("reverse geocoding failed")
			utils.Error(w, http.StatusBadGateway, "Could not resolve address")
			return
		}

		utils.Success(w, addr)
	}
}

func (s *Server) renderDashboard(w http.ResponseWriter, status int, view dashboard.View, alert string) {
	page := dashboardPage{
		Rows:        view.Rows,
		MapSettings: s.dash.Map().Settings(),
		Alert:       alert,
	}
	if !view.RefreshedAt.IsZero() {
		page.RefreshedAt = view.RefreshedAt.Format(dashboard.TimeLayout)
	}
	s.render(w, status, "dashboard.html", page)
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data interface{}) {
	tmpl, ok := s.pages[name]
	if !ok {
		http.Error(w, "Page not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		s.log.Error().Err(err).Str("template", name).Msg("failed to render page")
	}
}

// failureStatus passes backend rejections (4xx) through to the page and
// reports everything else as a bad gateway.
func failureStatus(err error) int {
	if code := apiclient.StatusCode(err); code >= 400 && code < 500 {
		return code
	}
	return http.StatusBadGateway
}

// userMessage is the text shown after "Error: ". Backend errors surface their
// body verbatim; anything else shows the error chain.
func userMessage(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return err.Error()
}

package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/spektr-org/launchdash/dashboard"
	"github.com/spektr-org/launchdash/engine"
	"github.com/spektr-org/launchdash/render"
)

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /controls", s.handleControls)
	mux.HandleFunc("GET /charts/{file}", s.handleChartPNG)
	mux.HandleFunc("GET /api/figures", s.handleFigures)
	mux.HandleFunc("GET /api/controls", s.handleControlDescriptors)
	mux.HandleFunc("GET /api/charts/pie", s.handlePie)
	mux.HandleFunc("GET /api/charts/scatter", s.handleScatter)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.handler())
	return mux
}

// session returns the caller's session, starting one and setting the cookie
// when the request carries none or an expired one.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *dashboard.Session {
	if c, err := r.Cookie(s.cookie); err == nil {
		if sess, ok := s.sessions.get(c.Value); ok {
			return sess
		}
	}
	id, sess := s.sessions.create()
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

// ============================================================================
// PAGE + SESSION ENDPOINTS
// ============================================================================

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	var buf bytes.Buffer
	if err := renderPage(&buf, s.controls, sess.State(), s.reg.Panels()); err != nil {
		s.log.Error("render page", slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, "render page failed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// handleControls applies a form submission as one change event.
// Empty fields keep the session's current value.
func (s *Server) handleControls(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	cur := sess.State()
	site := strings.TrimSpace(r.PostForm.Get("site"))
	if site == "" {
		site = cur.Site
	}
	low, err := floatParam(r.PostForm.Get("low"), cur.Payload.Low)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("low: %v", err))
		return
	}
	high, err := floatParam(r.PostForm.Get("high"), cur.Payload.High)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("high: %v", err))
		return
	}

	if err := sess.Apply(site, &engine.Range{Low: low, High: high}); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleChartPNG(w http.ResponseWriter, r *http.Request) {
	name, ok := strings.CutSuffix(r.PathValue("file"), ".png")
	if !ok {
		writeError(w, http.StatusNotFound, "charts are served as .png")
		return
	}
	sess := s.session(w, r)
	chart, ok := sess.Panel(dashboard.PanelID(name))
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown panel %q", name))
		return
	}

	var buf bytes.Buffer
	err := render.PNG(&buf, chart, s.size)
	if errors.Is(err, render.ErrNoData) {
		err = render.Placeholder(&buf, s.size)
	}
	if err != nil {
		s.log.Error("render chart", slog.String("panel", name), slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, "render chart failed")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

type figuresResponse struct {
	State   dashboard.State                           `json:"state"`
	Figures map[dashboard.PanelID]*engine.ChartConfig `json:"figures"`
}

func (s *Server) handleFigures(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	writeJSON(w, http.StatusOK, figuresResponse{State: sess.State(), Figures: sess.Panels()})
}

// ============================================================================
// STATELESS API
// ============================================================================

func (s *Server) handleControlDescriptors(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.controls)
}

func (s *Server) handlePie(w http.ResponseWriter, r *http.Request) {
	site, err := s.siteParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, dashboard.CategoryBreakdown(s.ds, site))
}

func (s *Server) handleScatter(w http.ResponseWriter, r *http.Request) {
	site, err := s.siteParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	bounds := s.ds.PayloadBounds()
	q := r.URL.Query()
	low, err := floatParam(q.Get("low"), bounds.Low)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("low: %v", err))
		return
	}
	high, err := floatParam(q.Get("high"), bounds.High)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("high: %v", err))
		return
	}
	rng := dashboard.ClampRange(bounds, low, high)
	writeJSON(w, http.StatusOK, dashboard.PayloadCorrelation(s.ds, site, rng))
}

type healthResponse struct {
	Status   string `json:"status"`
	Launches int    `json:"launches"`
	Sites    int    `json:"sites"`
	Sessions int    `json:"sessions"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Launches: s.ds.Len(),
		Sites:    len(s.ds.Sites()),
		Sessions: s.sessions.len(),
	})
}

// ============================================================================
// HELPERS
// ============================================================================

func (s *Server) siteParam(r *http.Request) (string, error) {
	site := strings.TrimSpace(r.URL.Query().Get("site"))
	if site == "" {
		return dashboard.AllSites, nil
	}
	if !dashboard.ValidSite(s.ds, site) {
		return "", fmt.Errorf("%w: %q", dashboard.ErrUnknownSite, site)
	}
	return site, nil
}

// floatParam parses v, returning def when v is blank.
func floatParam(v string, def float64) (float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", v)
	}
	return f, nil
}

func statusFor(err error) int {
	if errors.Is(err, dashboard.ErrUnknownSite) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

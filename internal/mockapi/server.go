// Package mockapi is a stand-in for the attribution backend. It speaks the
// SDK wire protocol so the demo runs end to end without the real service.
package mockapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/sdk"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// maxBodyBytes caps request bodies; dynamic link configs are the largest.
const maxBodyBytes = 64 << 10

// Options configure the backend.
type Options struct {
	// Secret verifies X-SDK-Signature. An empty secret still requires a
	// signature made with the empty key.
	Secret string
	// DeferredDeepLink is returned once, on the first init of a new install.
	DeferredDeepLink string
	// Attribution seeds every new install.
	Attribution map[string]string
}

type Server struct {
	store    Store
	opts     Options
	faults   *Faults
	requests atomic.Int64
	logger   *slog.Logger
	now      func() time.Time
}

func NewServer(store Store, opts Options, logger *slog.Logger) *Server {
	return &Server{
		store:  store,
		opts:   opts,
		faults: &Faults{},
		logger: logger,
		now:    time.Now,
	}
}

// Faults returns the switch used to make the backend misbehave.
func (s *Server) Faults() *Faults {
	return s.faults
}

// Handler returns the backend's HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	r.Route("/v1/sdk", func(r chi.Router) {
		r.Use(s.logRequest)
		r.Use(s.faults.Middleware)
		r.Use(s.verify)

		r.Post("/init", s.handleInit)
		r.Post("/events", s.handleEvent)
		r.Post("/user", s.handleUser)
		r.Get("/attribution", s.handleAttribution)
		r.Post("/dynamic-links", s.handleCreateLink)
		r.Post("/deeplinks/resolve", s.handleResolve)
	})

	r.Route("/mock", func(r chi.Router) {
		r.Get("/stats", s.handleStats)
		r.Get("/faults", s.handleGetFaults)
		r.Put("/faults", s.handleSetFaults)
	})

	return r
}

// SeedLink registers a link code ahead of time, so a known URL resolves
// before anyone has created it.
func (s *Server) SeedLink(ctx context.Context, code string, cfg domain.DynamicLinkConfig) error {
	return s.store.SaveLink(ctx, code, cfg)
}

func (s *Server) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count := s.requests.Add(1)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("sdk request",
			"n", count,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"sig", truncate(r.Header.Get(sdk.HeaderSignature), 16),
			"install_id", truncate(r.Header.Get(sdk.HeaderInstallID), 8),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// verify rejects requests without an app key or with a bad body signature.
func (s *Server) verify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(sdk.HeaderKey) == "" {
			respondError(w, http.StatusUnauthorized, "missing app key")
			return
		}
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			respondError(w, http.StatusBadRequest, "reading body")
			return
		}
		if !sdk.VerifySignature(body, s.opts.Secret, r.Header.Get(sdk.HeaderSignature)) {
			respondError(w, http.StatusUnauthorized, "invalid signature")
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleInit(w http.ResponseWriter, r *http.Request) {
	var req sdk.InitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AppKey == "" {
		respondError(w, http.StatusBadRequest, "app_key is required")
		return
	}

	if req.InstallID != "" {
		_, err := s.store.GetInstall(r.Context(), req.InstallID)
		if err == nil {
			respondJSON(w, http.StatusOK, sdk.InitResponse{InstallID: req.InstallID})
			return
		}
		if !errors.Is(err, ErrNotFound) {
			s.internalError(w, "loading install", err)
			return
		}
	}

	in := Install{
		ID:          uuid.New().String(),
		AppKey:      req.AppKey,
		Environment: req.Environment,
		CreatedAt:   s.now().UTC(),
	}
	attribution := copyMap(s.opts.Attribution)
	attribution[string(domain.FieldTrackierID)] = in.ID
	if err := s.store.CreateInstall(r.Context(), in, attribution); err != nil {
		s.internalError(w, "creating install", err)
		return
	}

	respondJSON(w, http.StatusOK, sdk.InitResponse{
		InstallID:        in.ID,
		DeferredDeepLink: s.opts.DeferredDeepLink,
	})
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	var req sdk.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.EventID == "" {
		respondError(w, http.StatusBadRequest, "event_id is required")
		return
	}
	if len(req.Params) > domain.MaxParams {
		respondError(w, http.StatusBadRequest, "too many parameters")
		return
	}
	req.InstallID = installID(r, req.InstallID)

	if err := s.store.RecordEvent(r.Context(), req); err != nil {
		s.storeError(w, "recording event", err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

var userFields = map[string]bool{
	sdk.UserFieldID:     true,
	sdk.UserFieldName:   true,
	sdk.UserFieldPhone:  true,
	sdk.UserFieldEmail:  true,
	sdk.UserFieldDOB:    true,
	sdk.UserFieldGender: true,
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	var req sdk.UserFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !userFields[req.Field] {
		respondError(w, http.StatusBadRequest, "unknown user field: "+req.Field)
		return
	}

	if err := s.store.SetUserField(r.Context(), installID(r, req.InstallID), req.Field, req.Value); err != nil {
		s.storeError(w, "setting user field", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAttribution(w http.ResponseWriter, r *http.Request) {
	field := r.URL.Query().Get("field")
	if !domain.ValidCampaignField(field) {
		respondError(w, http.StatusBadRequest, "unknown attribution field: "+field)
		return
	}

	attrs, err := s.store.Attribution(r.Context(), installID(r, r.URL.Query().Get("install_id")))
	if err != nil {
		s.storeError(w, "loading attribution", err)
		return
	}
	respondJSON(w, http.StatusOK, sdk.AttributionResponse{Field: field, Value: attrs[field]})
}

func (s *Server) handleCreateLink(w http.ResponseWriter, r *http.Request) {
	var cfg domain.DynamicLinkConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if cfg.DomainURIPrefix == "" || cfg.Link == "" {
		respondError(w, http.StatusBadRequest, "link and domainUriPrefix are required")
		return
	}

	code := newLinkCode()
	if err := s.store.SaveLink(r.Context(), code, cfg); err != nil {
		s.internalError(w, "saving link", err)
		return
	}
	respondJSON(w, http.StatusCreated, sdk.DynamicLinkResponse{
		Link: strings.TrimRight(cfg.DomainURIPrefix, "/") + "/d/" + code,
	})
}

type resolveResponse struct {
	URL        string            `json:"url"`
	Dlv        string            `json:"dlv,omitempty"`
	TemplateID string            `json:"template_id,omitempty"`
	SDKParams  map[string]string `json:"sdk_params,omitempty"`
	Campaign   map[string]string `json:"campaign,omitempty"`
}

// handleResolve answers an empty url for links it does not know. A known
// link also attributes the calling install to the link's campaign.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req sdk.ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	code, ok := linkCode(req.URL)
	if !ok {
		respondJSON(w, http.StatusOK, resolveResponse{})
		return
	}
	cfg, err := s.store.GetLink(r.Context(), code)
	if errors.Is(err, ErrNotFound) {
		respondJSON(w, http.StatusOK, resolveResponse{})
		return
	}
	if err != nil {
		s.internalError(w, "loading link", err)
		return
	}

	resp := resolveResponse{
		URL:        deepLinkURL(cfg),
		Dlv:        cfg.DeepLinkValue,
		TemplateID: cfg.TemplateID,
		SDKParams:  cfg.SDKParameters,
		Campaign:   campaignFields(cfg),
	}

	if id := installID(r, req.InstallID); id != "" && len(resp.Campaign) > 0 {
		fields := copyMap(resp.Campaign)
		fields[string(domain.FieldDlv)] = cfg.DeepLinkValue
		fields[string(domain.FieldIsRetargeting)] = "true"
		if err := s.store.MergeAttribution(r.Context(), id, fields); err != nil && !errors.Is(err, ErrNotFound) {
			s.logger.Warn("attributing install to link", "error", err, "install_id", id, "code", code)
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]int64{"total_requests": s.requests.Load()})
}

func (s *Server) handleGetFaults(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.faults.Get())
}

func (s *Server) handleSetFaults(w http.ResponseWriter, r *http.Request) {
	var f FaultConfig
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.faults.Set(f); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Info("fault mode changed", "mode", f.Mode, "delay", f.Delay)
	respondJSON(w, http.StatusOK, s.faults.Get())
}

func (s *Server) storeError(w http.ResponseWriter, msg string, err error) {
	if errors.Is(err, ErrNotFound) {
		respondError(w, http.StatusNotFound, "unknown install")
		return
	}
	s.internalError(w, msg, err)
}

func (s *Server) internalError(w http.ResponseWriter, msg string, err error) {
	s.logger.Error(msg, "error", err)
	respondError(w, http.StatusInternalServerError, "internal server error")
}

// installID prefers the id in the request body or query and falls back to
// the header.
func installID(r *http.Request, fromBody string) string {
	if fromBody != "" {
		return fromBody
	}
	return r.Header.Get(sdk.HeaderInstallID)
}

func newLinkCode() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:10]
}

// linkCode extracts the code from <prefix>/d/<code>.
func linkCode(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) != 2 || parts[0] != "d" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func deepLinkURL(cfg domain.DynamicLinkConfig) string {
	u, err := url.Parse(cfg.Link)
	if err != nil {
		return cfg.Link
	}
	q := u.Query()
	if cfg.DeepLinkValue != "" {
		q.Set("dlv", cfg.DeepLinkValue)
	}
	for k, v := range cfg.SDKParameters {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func campaignFields(cfg domain.DynamicLinkConfig) map[string]string {
	a := cfg.AttributionParameters
	if a == nil {
		return nil
	}
	out := make(map[string]string)
	set := func(f domain.CampaignField, v string) {
		if v != "" {
			out[string(f)] = v
		}
	}
	set(domain.FieldChannel, a.Channel)
	set(domain.FieldCampaign, a.Campaign)
	set(domain.FieldPid, a.MediaSource)
	set(domain.FieldP1, a.P1)
	set(domain.FieldP2, a.P2)
	set(domain.FieldP3, a.P3)
	set(domain.FieldP4, a.P4)
	set(domain.FieldP5, a.P5)
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, sdk.ErrorResponse{Error: message})
}

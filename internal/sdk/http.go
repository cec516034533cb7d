package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"
)

// Guard sheds calls for a scope, such as a circuit breaker.
type Guard interface {
	Allow(ctx context.Context, scope string) error
	RecordSuccess(ctx context.Context, scope string)
	RecordFailure(ctx context.Context, scope string)
}

// Limiter throttles calls for a scope.
type Limiter interface {
	Allow(ctx context.Context, scope string) error
}

// HTTPOptions configures an HTTPFacade. Breaker and Limiter are optional.
type HTTPOptions struct {
	BaseURL string
	Timeout time.Duration
	Breaker Guard
	Limiter Limiter
	Stream  *DeepLinkStream
}

// HTTPFacade implements Facade against an attribution backend speaking JSON
// over HTTP. Request bodies are signed with the SDK secret.
type HTTPFacade struct {
	baseURL    string
	httpClient *http.Client
	breaker    Guard
	limiter    Limiter
	stream     *DeepLinkStream
	logger     *slog.Logger

	mu        sync.RWMutex
	cfg       Config
	installID string
}

func NewHTTPFacade(opts HTTPOptions, logger *slog.Logger) *HTTPFacade {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	stream := opts.Stream
	if stream == nil {
		stream = NewDeepLinkStream(16, logger)
	}
	return &HTTPFacade{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		breaker: opts.Breaker,
		limiter: opts.Limiter,
		stream:  stream,
		logger:  logger,
	}
}

// InstallID returns the identifier assigned by the backend at initialization.
func (f *HTTPFacade) InstallID() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.installID
}

func (f *HTTPFacade) Initialize(ctx context.Context, cfg Config) error {
	f.mu.Lock()
	f.cfg = cfg
	prev := f.installID
	f.mu.Unlock()

	var resp InitResponse
	req := InitRequest{AppKey: cfg.AppKey, Environment: string(cfg.Environment), InstallID: prev}
	if err := f.do(ctx, "initialize", http.MethodPost, PathInit, req, &resp); err != nil {
		return err
	}
	if resp.InstallID == "" {
		return &domain.SdkCallError{Op: "initialize", Err: errors.New("backend returned no install id")}
	}

	f.mu.Lock()
	f.installID = resp.InstallID
	f.mu.Unlock()

	f.logger.Info("sdk initialized",
		"install_id", resp.InstallID,
		"environment", cfg.Environment,
	)
	if resp.DeferredDeepLink != "" {
		f.stream.Publish(resp.DeferredDeepLink)
	}
	return nil
}

func (f *HTTPFacade) TrackEvent(ctx context.Context, ev domain.TrackableEvent) error {
	return f.do(ctx, "track_event", http.MethodPost, PathEvents, NewEventRequest(f.InstallID(), ev), nil)
}

func (f *HTTPFacade) setUserField(ctx context.Context, field, value string) error {
	req := UserFieldRequest{InstallID: f.InstallID(), Field: field, Value: value}
	return f.do(ctx, "set_"+field, http.MethodPost, PathUser, req, nil)
}

func (f *HTTPFacade) SetUserID(ctx context.Context, v string) error {
	return f.setUserField(ctx, UserFieldID, v)
}

func (f *HTTPFacade) SetUserName(ctx context.Context, v string) error {
	return f.setUserField(ctx, UserFieldName, v)
}

func (f *HTTPFacade) SetUserPhone(ctx context.Context, v string) error {
	return f.setUserField(ctx, UserFieldPhone, v)
}

func (f *HTTPFacade) SetUserEmail(ctx context.Context, v string) error {
	return f.setUserField(ctx, UserFieldEmail, v)
}

func (f *HTTPFacade) SetDOB(ctx context.Context, v string) error {
	return f.setUserField(ctx, UserFieldDOB, v)
}

func (f *HTTPFacade) SetGender(ctx context.Context, v string) error {
	return f.setUserField(ctx, UserFieldGender, v)
}

func (f *HTTPFacade) CampaignField(ctx context.Context, field domain.CampaignField) (string, error) {
	q := url.Values{}
	q.Set("install_id", f.InstallID())
	q.Set("field", string(field))

	var resp AttributionResponse
	if err := f.do(ctx, "campaign_"+string(field), http.MethodGet, PathAttribution+"?"+q.Encode(), nil, &resp); err != nil {
		return "", err
	}
	return resp.Value, nil
}

func (f *HTTPFacade) CreateDynamicLink(ctx context.Context, cfg domain.DynamicLinkConfig) (string, error) {
	var resp DynamicLinkResponse
	if err := f.do(ctx, "create_dynamic_link", http.MethodPost, PathDynamicLinks, cfg, &resp); err != nil {
		return "", err
	}
	return resp.Link, nil
}

func (f *HTTPFacade) ResolveDeepLinkURL(ctx context.Context, rawURL string) (domain.ResolvedLink, error) {
	var raw map[string]any
	req := ResolveRequest{InstallID: f.InstallID(), URL: rawURL}
	if err := f.do(ctx, "resolve_deeplink", http.MethodPost, PathResolve, req, &raw); err != nil {
		return domain.ResolvedLink{}, err
	}
	out := domain.ResolvedLink{Fields: raw}
	if u, ok := raw["url"].(string); ok {
		out.URL = u
	}
	return out, nil
}

// ParseDeepLink is answered locally: the URL is split into its host, path
// and query values.
func (f *HTTPFacade) ParseDeepLink(_ context.Context, rawURL string) (map[string]string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &domain.ParseError{URL: rawURL, Err: err}
	}
	out := map[string]string{"host": u.Host, "path": u.Path}
	for k, v := range u.Query() {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out, nil
}

func (f *HTTPFacade) DeferredDeepLinks() <-chan string {
	return f.stream.Links()
}

// do performs one backend call. Failures are returned as *domain.SdkCallError
// and are never retried.
func (f *HTTPFacade) do(ctx context.Context, op, method, path string, in, out any) error {
	f.mu.RLock()
	cfg := f.cfg
	installID := f.installID
	f.mu.RUnlock()
	scope := cfg.AppKey

	if f.limiter != nil {
		if err := f.limiter.Allow(ctx, scope); err != nil {
			return &domain.SdkCallError{Op: op, Err: err}
		}
	}
	if f.breaker != nil {
		if err := f.breaker.Allow(ctx, scope); err != nil {
			return &domain.SdkCallError{Op: op, Err: err}
		}
	}

	var body []byte
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return &domain.SdkCallError{Op: op, Err: fmt.Errorf("encoding request: %w", err)}
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, f.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return &domain.SdkCallError{Op: op, Err: fmt.Errorf("creating request: %w", err)}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(HeaderKey, cfg.AppKey)
	req.Header.Set(HeaderVersion, Version)
	req.Header.Set(HeaderSignature, sign(body, cfg.Secret))
	if installID != "" {
		req.Header.Set(HeaderInstallID, installID)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.recordFailure(ctx, scope)
		return &domain.SdkCallError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	// Limit to 64KB; attribution payloads are small.
	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		f.recordFailure(ctx, scope)
		return &domain.SdkCallError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("reading response: %w", err)}
	}

	// Any reply below 500, 4xx included, counts as a healthy backend.
	if resp.StatusCode >= 500 {
		f.recordFailure(ctx, scope)
	} else if f.breaker != nil {
		f.breaker.RecordSuccess(ctx, scope)
	}

	if resp.StatusCode >= 400 {
		msg := http.StatusText(resp.StatusCode)
		var e ErrorResponse
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			msg = e.Error
		}
		return &domain.SdkCallError{Op: op, StatusCode: resp.StatusCode, Err: errors.New(msg)}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return &domain.SdkCallError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
		}
	}
	return nil
}

func (f *HTTPFacade) recordFailure(ctx context.Context, scope string) {
	if f.breaker != nil {
		f.breaker.RecordFailure(ctx, scope)
	}
}

// Package sdktest provides an in-memory Facade for tests.
package sdktest

import (
	"context"
	"sync"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/sdk"
)

// Fake records calls and answers from its fields. Set an entry in Errs,
// keyed by method name, to make that method fail.
type Fake struct {
	mu sync.Mutex

	Errs        map[string]error
	FieldErrs   map[domain.CampaignField]error
	Attribution map[domain.CampaignField]string
	Link        string
	Resolved    domain.ResolvedLink

	Events  []domain.TrackableEvent
	User    map[string]string
	Configs []domain.DynamicLinkConfig
	Inits   int

	Deferred chan string
}

func New() *Fake {
	return &Fake{
		Errs:        make(map[string]error),
		FieldErrs:   make(map[domain.CampaignField]error),
		Attribution: make(map[domain.CampaignField]string),
		User:        make(map[string]string),
		Deferred:    make(chan string, 8),
	}
}

// Fail makes method return err from now on.
func (f *Fake) Fail(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Errs[method] = err
}

func (f *Fake) err(method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Errs[method]
}

// TrackedEvents returns a copy of the events received so far.
func (f *Fake) TrackedEvents() []domain.TrackableEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.TrackableEvent(nil), f.Events...)
}

func (f *Fake) UserField(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.User[name]
}

func (f *Fake) Initialize(_ context.Context, _ sdk.Config) error {
	f.mu.Lock()
	f.Inits++
	f.mu.Unlock()
	return f.err("Initialize")
}

func (f *Fake) TrackEvent(_ context.Context, ev domain.TrackableEvent) error {
	if err := f.err("TrackEvent"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Events = append(f.Events, ev)
	return nil
}

func (f *Fake) setUser(method, field, v string) error {
	if err := f.err(method); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.User[field] = v
	return nil
}

func (f *Fake) SetUserID(_ context.Context, v string) error {
	return f.setUser("SetUserID", sdk.UserFieldID, v)
}

func (f *Fake) SetUserName(_ context.Context, v string) error {
	return f.setUser("SetUserName", sdk.UserFieldName, v)
}

func (f *Fake) SetUserPhone(_ context.Context, v string) error {
	return f.setUser("SetUserPhone", sdk.UserFieldPhone, v)
}

func (f *Fake) SetUserEmail(_ context.Context, v string) error {
	return f.setUser("SetUserEmail", sdk.UserFieldEmail, v)
}

func (f *Fake) SetDOB(_ context.Context, v string) error {
	return f.setUser("SetDOB", sdk.UserFieldDOB, v)
}

func (f *Fake) SetGender(_ context.Context, v string) error {
	return f.setUser("SetGender", sdk.UserFieldGender, v)
}

func (f *Fake) CampaignField(_ context.Context, field domain.CampaignField) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.FieldErrs[field]; err != nil {
		return "", err
	}
	return f.Attribution[field], nil
}

func (f *Fake) CreateDynamicLink(_ context.Context, cfg domain.DynamicLinkConfig) (string, error) {
	if err := f.err("CreateDynamicLink"); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Configs = append(f.Configs, cfg)
	return f.Link, nil
}

func (f *Fake) ResolveDeepLinkURL(_ context.Context, _ string) (domain.ResolvedLink, error) {
	if err := f.err("ResolveDeepLinkURL"); err != nil {
		return domain.ResolvedLink{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Resolved, nil
}

func (f *Fake) ParseDeepLink(_ context.Context, rawURL string) (map[string]string, error) {
	if err := f.err("ParseDeepLink"); err != nil {
		return nil, err
	}
	return map[string]string{"url": rawURL}, nil
}

func (f *Fake) DeferredDeepLinks() <-chan string {
	return f.Deferred
}

// ReadyClient returns a Client over f that has already initialized.
func ReadyClient(f *Fake) *sdk.Client {
	c := NewClient(f)
	if err := c.Initialize(context.Background()); err != nil {
		panic(err)
	}
	return c
}

// NewClient returns an uninitialized Client over f.
func NewClient(f *Fake) *sdk.Client {
	return sdk.NewClient(f, sdk.Config{AppKey: "test-key", Environment: sdk.EnvTesting}, Logger())
}

package deeplink

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"
)

type recordingNavigator struct {
	mu      sync.Mutex
	targets []domain.NavigationTarget
	err     error
}

func (n *recordingNavigator) Navigate(_ context.Context, t domain.NavigationTarget) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.targets = append(n.targets, t)
	return n.err
}

func (n *recordingNavigator) snapshot() []domain.NavigationTarget {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.NavigationTarget(nil), n.targets...)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestDispatcher_NavigatesToResult(t *testing.T) {
	nav := &recordingNavigator{}
	d := NewDispatcher(NewRouter(DefaultRoutes()...), nav, testLogger())

	if d.LastState() != StateIdle {
		t.Fatalf("LastState() = %s before any link, want idle", d.LastState())
	}

	res, err := d.Dispatch(context.Background(), "scheme://open?product_id=42&quantity=3", SourceAppOpen)
	if err != nil {
		t.Fatalf("Dispatch() error: %v", err)
	}
	if res.State != StateMatched {
		t.Errorf("State = %s", res.State)
	}

	got := nav.snapshot()
	if len(got) != 1 || got[0].ScreenID != domain.ScreenCake || got[0].QueryParams["productId"] != "42" {
		t.Errorf("navigated to %+v", got)
	}
	if !d.Opened() {
		t.Error("Opened() should be true after an app-open link")
	}
	if d.LastState() != StateMatched {
		t.Errorf("LastState() = %s", d.LastState())
	}
}

func TestDispatcher_MalformedURLNavigatesHome(t *testing.T) {
	nav := &recordingNavigator{}
	d := NewDispatcher(NewRouter(DefaultRoutes()...), nav, testLogger())

	res, err := d.Dispatch(context.Background(), "::not a url::", SourceResolve)
	if err != nil {
		t.Fatalf("Dispatch() error: %v", err)
	}
	if res.Err == nil {
		t.Error("expected the parse error on the result")
	}
	got := nav.snapshot()
	if len(got) != 1 || got[0].ScreenID != domain.ScreenHome {
		t.Errorf("navigated to %+v, want home", got)
	}
	if d.Opened() {
		t.Error("an explicit resolve should not count as an app open")
	}
}

func TestDispatcher_NavigationErrorReturned(t *testing.T) {
	nav := &recordingNavigator{err: errors.New("redis down")}
	d := NewDispatcher(NewRouter(DefaultRoutes()...), nav, testLogger())

	_, err := d.Dispatch(context.Background(), "scheme://open?product_id=1&quantity=1", SourceAppOpen)
	if err == nil {
		t.Fatal("expected navigation error")
	}
}

func TestListener_DispatchesDeferredLinks(t *testing.T) {
	nav := &recordingNavigator{}
	d := NewDispatcher(NewRouter(DefaultRoutes()...), nav, testLogger())
	links := make(chan string, 2)
	l := NewListener(links, d, testLogger())

	done := make(chan struct{})
	go func() {
		l.Run(context.Background())
		close(done)
	}()

	links <- "myapp://cake/5/1"
	links <- "myapp://open?quantity=0"
	close(links)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not stop after the stream closed")
	}

	got := nav.snapshot()
	if len(got) != 2 {
		t.Fatalf("navigated %d times, want 2", len(got))
	}
	if got[0].ScreenID != domain.ScreenCake || got[1].ScreenID != domain.ScreenHome {
		t.Errorf("targets = %+v", got)
	}
	if !d.Opened() {
		t.Error("deferred links count as an app open")
	}
}

func TestListener_StopsOnCancel(t *testing.T) {
	d := NewDispatcher(NewRouter(), &recordingNavigator{}, testLogger())
	l := NewListener(make(chan string), d, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not stop on cancel")
	}
}

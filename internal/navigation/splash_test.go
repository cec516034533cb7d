package navigation

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"
)

func TestSplashGate_NavigatesHomeAfterDelay(t *testing.T) {
	nav := NewMemory(nil)
	nav.Navigate(context.Background(), target("splash"))
	g := NewSplashGate(nav, 10*time.Millisecond, func() bool { return false }, testLogger())

	settled := make(chan struct{})
	close(settled)

	if !g.Run(context.Background(), settled) {
		t.Fatal("Run() did not navigate")
	}
	cur, _ := nav.Current(context.Background())
	if cur.ScreenID != domain.ScreenHome {
		t.Errorf("Current() = %q", cur.ScreenID)
	}
}

func TestSplashGate_SkippedWhenDeepLinkOpened(t *testing.T) {
	nav := NewMemory(nil)
	var opened atomic.Bool
	g := NewSplashGate(nav, 50*time.Millisecond, opened.Load, testLogger())

	settled := make(chan struct{})
	close(settled)

	go func() {
		time.Sleep(10 * time.Millisecond)
		nav.Navigate(context.Background(), target(domain.ScreenCake, "productId", "1", "quantity", "1"))
		opened.Store(true)
	}()

	if g.Run(context.Background(), settled) {
		t.Fatal("Run() navigated home after a deep link")
	}
	cur, _ := nav.Current(context.Background())
	if cur.ScreenID != domain.ScreenCake {
		t.Errorf("Current() = %q, deep link target was overwritten", cur.ScreenID)
	}
}

func TestSplashGate_WaitsForSettle(t *testing.T) {
	g := NewSplashGate(NewMemory(nil), time.Millisecond, func() bool { return false }, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if g.Run(ctx, make(chan struct{})) {
		t.Error("Run() navigated before initialization settled")
	}
}

package sdk

import (
	"log/slog"
	"os"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestDeepLinkStream_DeliversOnce(t *testing.T) {
	s := NewDeepLinkStream(4, testLogger())

	if !s.Publish("myapp://open?product_id=1&quantity=2") {
		t.Fatal("first publish rejected")
	}
	if s.Publish("myapp://open?product_id=1&quantity=2") {
		t.Error("duplicate publish accepted")
	}

	got := <-s.Links()
	if got != "myapp://open?product_id=1&quantity=2" {
		t.Errorf("got %q", got)
	}
	select {
	case extra := <-s.Links():
		t.Errorf("unexpected second delivery %q", extra)
	default:
	}
}

func TestDeepLinkStream_FullBufferDrops(t *testing.T) {
	s := NewDeepLinkStream(1, testLogger())

	if !s.Publish("a://1") {
		t.Fatal("publish into empty buffer rejected")
	}
	if s.Publish("a://2") {
		t.Error("publish into full buffer should be dropped")
	}

	<-s.Links()
	if !s.Publish("a://2") {
		t.Error("dropped link should be accepted once there is room")
	}
}

func TestDeepLinkStream_Close(t *testing.T) {
	s := NewDeepLinkStream(1, testLogger())
	s.Close()
	s.Close()

	if s.Publish("a://1") {
		t.Error("publish after close accepted")
	}
	if _, ok := <-s.Links(); ok {
		t.Error("channel should be closed")
	}
}

package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestNewRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedis(context.Background(), "redis://"+mr.Addr()+"/0")
	if err != nil {
		t.Fatalf("NewRedis() error: %v", err)
	}
	defer client.Close()

	if err := client.Set(context.Background(), "k", "v", 0).Err(); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if got, err := mr.Get("k"); err != nil || got != "v" {
		t.Errorf("Get() = %q, %v", got, err)
	}
}

func TestNewRedis_Errors(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"bad scheme", "http://localhost:6379"},
		{"unreachable", "redis://127.0.0.1:1/0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRedis(context.Background(), tt.url); err == nil {
				t.Error("expected error")
			}
		})
	}
}

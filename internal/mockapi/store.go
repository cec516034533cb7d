package mockapi

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/sdk"
)

// ErrNotFound is returned by a Store for unknown installs and link codes.
var ErrNotFound = errors.New("not found")

// Install is one SDK installation registered through the init call.
type Install struct {
	ID          string    `json:"id"`
	AppKey      string    `json:"app_key"`
	Environment string    `json:"environment"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store persists what the backend has seen. Implemented in memory here and
// on Postgres in internal/store.
type Store interface {
	CreateInstall(ctx context.Context, in Install, attribution map[string]string) error
	GetInstall(ctx context.Context, id string) (Install, error)
	RecordEvent(ctx context.Context, ev sdk.EventRequest) error
	SetUserField(ctx context.Context, installID, field, value string) error
	Attribution(ctx context.Context, installID string) (map[string]string, error)
	MergeAttribution(ctx context.Context, installID string, fields map[string]string) error
	SaveLink(ctx context.Context, code string, cfg domain.DynamicLinkConfig) error
	GetLink(ctx context.Context, code string) (domain.DynamicLinkConfig, error)
}

type memoryInstall struct {
	Install
	attribution map[string]string
	user        map[string]string
	events      []sdk.EventRequest
}

// MemoryStore is a Store for tests and for running without Postgres.
type MemoryStore struct {
	mu       sync.RWMutex
	installs map[string]*memoryInstall
	links    map[string]domain.DynamicLinkConfig
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		installs: make(map[string]*memoryInstall),
		links:    make(map[string]domain.DynamicLinkConfig),
	}
}

func (m *MemoryStore) CreateInstall(_ context.Context, in Install, attribution map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.installs[in.ID] = &memoryInstall{
		Install:     in,
		attribution: copyMap(attribution),
		user:        make(map[string]string),
	}
	return nil
}

func (m *MemoryStore) GetInstall(_ context.Context, id string) (Install, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	in, ok := m.installs[id]
	if !ok {
		return Install{}, ErrNotFound
	}
	return in.Install, nil
}

func (m *MemoryStore) RecordEvent(_ context.Context, ev sdk.EventRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	in, ok := m.installs[ev.InstallID]
	if !ok {
		return ErrNotFound
	}
	in.events = append(in.events, ev)
	return nil
}

func (m *MemoryStore) SetUserField(_ context.Context, installID, field, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	in, ok := m.installs[installID]
	if !ok {
		return ErrNotFound
	}
	in.user[field] = value
	return nil
}

func (m *MemoryStore) Attribution(_ context.Context, installID string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	in, ok := m.installs[installID]
	if !ok {
		return nil, ErrNotFound
	}
	return copyMap(in.attribution), nil
}

func (m *MemoryStore) MergeAttribution(_ context.Context, installID string, fields map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	in, ok := m.installs[installID]
	if !ok {
		return ErrNotFound
	}
	for k, v := range fields {
		in.attribution[k] = v
	}
	return nil
}

func (m *MemoryStore) SaveLink(_ context.Context, code string, cfg domain.DynamicLinkConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links[code] = cfg
	return nil
}

func (m *MemoryStore) GetLink(_ context.Context, code string) (domain.DynamicLinkConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cfg, ok := m.links[code]
	if !ok {
		return domain.DynamicLinkConfig{}, ErrNotFound
	}
	return cfg, nil
}

// Events returns the events recorded for an install.
func (m *MemoryStore) Events(installID string) []sdk.EventRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	in, ok := m.installs[installID]
	if !ok {
		return nil
	}
	return append([]sdk.EventRequest(nil), in.events...)
}

// UserFields returns the profile fields recorded for an install.
func (m *MemoryStore) UserFields(installID string) map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	in, ok := m.installs[installID]
	if !ok {
		return nil
	}
	return copyMap(in.user)
}

func copyMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

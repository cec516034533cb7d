package navigation

import (
	"context"
	"reflect"
	"sync"

	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/domain"
	"github.com/ApptroveLabs/cordova-sdk-simulator/internal/websocket"
)

// Memory is an in-process Navigator for the CLI and tests.
type Memory struct {
	mu        sync.Mutex
	current   *domain.NavigationTarget
	history   []domain.NavigationTarget
	publisher Publisher
}

// NewMemory creates an in-process navigator. publisher may be nil.
func NewMemory(publisher Publisher) *Memory {
	return &Memory{publisher: publisher}
}

func (m *Memory) Navigate(_ context.Context, target domain.NavigationTarget) error {
	m.mu.Lock()
	if m.current != nil && !reflect.DeepEqual(*m.current, target) {
		m.history = append([]domain.NavigationTarget{*m.current}, m.history...)
		if len(m.history) > MaxHistory {
			m.history = m.history[:MaxHistory]
		}
	}
	m.current = &target
	m.mu.Unlock()

	m.publish(target)
	return nil
}

func (m *Memory) Back(_ context.Context) (domain.NavigationTarget, error) {
	m.mu.Lock()
	target := domain.Home()
	if len(m.history) > 0 {
		target = m.history[0]
		m.history = m.history[1:]
	}
	m.current = &target
	m.mu.Unlock()

	m.publish(target)
	return target, nil
}

func (m *Memory) Current(_ context.Context) (domain.NavigationTarget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return domain.Home(), nil
	}
	return *m.current, nil
}

func (m *Memory) History(_ context.Context) ([]domain.NavigationTarget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.NavigationTarget(nil), m.history...), nil
}

func (m *Memory) publish(target domain.NavigationTarget) {
	if m.publisher != nil {
		m.publisher.Broadcast(websocket.TypeNavigation, target)
	}
}

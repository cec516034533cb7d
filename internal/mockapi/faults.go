package mockapi

import (
	"fmt"
	"net/http"
	"sync"
	"time"
)

// Fault modes for SDK routes.
const (
	FaultNone = "none"
	FaultSlow = "slow"
	FaultFail = "fail"
)

// FaultConfig is the JSON body of PUT /mock/faults.
type FaultConfig struct {
	Mode  string `json:"mode"`
	Delay string `json:"delay,omitempty"` // slow mode only, default 3s
}

// Faults makes SDK routes slow or failing, to exercise the circuit breaker
// on the client side.
type Faults struct {
	mu    sync.RWMutex
	mode  string
	delay time.Duration
}

func (f *Faults) Set(cfg FaultConfig) error {
	delay := 3 * time.Second
	if cfg.Delay != "" {
		d, err := time.ParseDuration(cfg.Delay)
		if err != nil {
			return fmt.Errorf("invalid delay: %w", err)
		}
		delay = d
	}
	switch cfg.Mode {
	case "", FaultNone, FaultSlow, FaultFail:
	default:
		return fmt.Errorf("unknown fault mode %q", cfg.Mode)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.mode = cfg.Mode
	f.delay = delay
	return nil
}

func (f *Faults) Get() FaultConfig {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := FaultConfig{Mode: f.mode}
	if out.Mode == "" {
		out.Mode = FaultNone
	}
	if out.Mode == FaultSlow {
		out.Delay = f.delay.String()
	}
	return out
}

func (f *Faults) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.RLock()
		mode, delay := f.mode, f.delay
		f.mu.RUnlock()

		switch mode {
		case FaultFail:
			respondError(w, http.StatusInternalServerError, "internal server error")
			return
		case FaultSlow:
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

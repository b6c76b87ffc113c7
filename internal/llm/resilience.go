package llm

import (
	"context"
	"errors"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/circuitbreaker"

	"github.com/jonathan/glimpse/internal/logging"
)

// BreakerConfig configures the circuit breaker placed around remote calls.
type BreakerConfig struct {
	// Name identifies this circuit breaker in logs
	Name string
	// FailureThreshold failures within Window executions trip the breaker
	FailureThreshold uint
	Window           uint
	// Delay is how long the breaker stays open before probing again
	Delay time.Duration
	// Logger for state change notifications
	Logger logging.Logger
}

// DefaultBreakerConfig trips after 3 failures in 5 calls and half-opens after 30s.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "gemini",
		FailureThreshold: 3,
		Window:           5,
		Delay:            30 * time.Second,
	}
}

// Breaker short-circuits remote calls after repeated failures so searches
// fall back to local ranking without waiting on a failing endpoint.
type Breaker struct {
	cb   circuitbreaker.CircuitBreaker[string]
	name string
}

// NewBreaker creates a circuit breaker from cfg, filling defaults.
func NewBreaker(cfg BreakerConfig) *Breaker {
	defaults := DefaultBreakerConfig()
	if cfg.Name == "" {
		cfg.Name = defaults.Name
	}
	if cfg.Window == 0 {
		cfg.Window = defaults.Window
	}
	if cfg.FailureThreshold == 0 || cfg.FailureThreshold > cfg.Window {
		cfg.FailureThreshold = min(defaults.FailureThreshold, cfg.Window)
	}
	if cfg.Delay <= 0 {
		cfg.Delay = defaults.Delay
	}

	builder := circuitbreaker.NewBuilder[string]().
		WithFailureThresholdRatio(cfg.FailureThreshold, cfg.Window).
		WithDelay(cfg.Delay).
		WithSuccessThreshold(1)

	if cfg.Logger != nil {
		logger := cfg.Logger
		name := cfg.Name
		builder = builder.OnStateChanged(func(event circuitbreaker.StateChangedEvent) {
			logger.WithFields(logging.Fields{
				"circuit_breaker": name,
				"from_state":      stateName(event.OldState),
				"to_state":        stateName(event.NewState),
			}).Warn("circuit breaker state change")
		})
	}

	return &Breaker{cb: builder.Build(), name: cfg.Name}
}

// IsOpen reports whether calls are currently short-circuited
func (b *Breaker) IsOpen() bool {
	return b.cb.IsOpen()
}

// Wrap returns a client whose calls pass through the breaker
func (b *Breaker) Wrap(client Client) Client {
	return &guardedClient{Client: client, breaker: b}
}

// WrapFactory wraps every client produced by factory
func (b *Breaker) WrapFactory(factory Factory) Factory {
	return func(ctx context.Context, apiKey string) (Client, error) {
		client, err := factory(ctx, apiKey)
		if err != nil {
			return nil, err
		}
		return b.Wrap(client), nil
	}
}

type guardedClient struct {
	Client
	breaker *Breaker
}

func (g *guardedClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	text, err := failsafe.With[string](g.breaker.cb).WithContext(ctx).Get(func() (string, error) {
		return g.Client.GenerateContent(ctx, prompt)
	})
	if errors.Is(err, circuitbreaker.ErrOpen) {
		return "", ErrCircuitOpen
	}
	return text, err
}

func stateName(state circuitbreaker.State) string {
	switch state {
	case circuitbreaker.ClosedState:
		return "closed"
	case circuitbreaker.HalfOpenState:
		return "half-open"
	case circuitbreaker.OpenState:
		return "open"
	default:
		return "unknown"
	}
}

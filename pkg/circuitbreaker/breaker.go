package circuitbreaker

import (
	"errors"
	"time"

	"github.com/careerconnect/connect-client/pkg/logger"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// ErrOpen is returned instead of calling through while the breaker is open
// or while the half-open trial quota is used up.
var ErrOpen = errors.New("circuit breaker open")

// Settings tunes a Breaker. Zero values fall back to the defaults below.
type Settings struct {
	Name string

	// MinRequests is the sample size before the failure ratio is considered
	MinRequests  uint32
	FailureRatio float64

	// Trials is how many calls may go through while half-open
	Trials uint32

	// Window resets the failure counts while closed
	Window time.Duration

	// Cooldown is how long the breaker stays open before letting trial calls through
	Cooldown time.Duration

	// Healthy decides whether a failed call still proves the remote side is up.
	// A nil Healthy counts every error as a failure.
	Healthy func(err error) bool
}

// Breaker makes calls fail fast while a remote dependency is down. It never
// retries on the caller's behalf.
type Breaker struct {
	cb *gobreaker.CircuitBreaker
}

// New builds a Breaker from s
func New(s Settings) *Breaker {
	if s.MinRequests == 0 {
		s.MinRequests = 5
	}
	if s.FailureRatio == 0 {
		s.FailureRatio = 0.6
	}
	if s.Trials == 0 {
		s.Trials = 3
	}
	if s.Window == 0 {
		s.Window = time.Minute
	}
	if s.Cooldown == 0 {
		s.Cooldown = 30 * time.Second
	}

	return &Breaker{cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.Trials,
		Interval:    s.Window,
		Timeout:     s.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= s.FailureRatio
		},
		IsSuccessful: s.Healthy,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})}
}

// Run calls fn unless the breaker is open. The error from fn is returned
// unchanged; a rejected call returns ErrOpen.
func (b *Breaker) Run(fn func() error) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrOpen
	}
	return err
}

// Available reports whether calls are currently let through
func (b *Breaker) Available() bool {
	return b.cb.State() != gobreaker.StateOpen
}

package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"esgwatch/internal/ports"
)

// BreakerConfig tunes the circuit breaker in front of the remote origin.
type BreakerConfig struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      3,
	}
}

// HTTP fetches <base>/<resource>.json from a static origin. A tripped breaker
// fails fast instead of queueing more requests against a dead origin.
type HTTP struct {
	base    string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewHTTP builds the source. A zero timeout leaves requests unbounded.
func NewHTTP(base string, timeout time.Duration, bc BreakerConfig, log *zap.Logger) *HTTP {
	if log == nil {
		log = zap.NewNop()
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "feed",
		MaxRequests: bc.MaxRequests,
		Interval:    bc.Interval,
		Timeout:     bc.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < bc.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= bc.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("feed breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return &HTTP{
		base:    strings.TrimRight(base, "/"),
		client:  &http.Client{Timeout: timeout},
		breaker: cb,
	}
}

func (h *HTTP) URL(r ports.Resource) string {
	return h.base + "/" + string(r) + ".json"
}

func (h *HTTP) Fetch(ctx context.Context, r ports.Resource) ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("fetch %q: %w", r, ports.ErrUnknownResource)
	}
	out, err := h.breaker.Execute(func() (interface{}, error) {
		return h.get(ctx, r)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", r, err)
	}
	return out.([]byte), nil
}

func (h *HTTP) get(ctx context.Context, r ports.Resource) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL(r), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, ports.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

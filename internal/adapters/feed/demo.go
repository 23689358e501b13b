package feed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"esgwatch/internal/ports"
)

var demoLabels = map[ports.Resource]string{
	ports.ResourceOverview:   "risk data",
	ports.ResourceIncidents:  "incidents",
	ports.ResourceHistory:    "historical data",
	ports.ResourceCategories: "ESG categories",
	ports.ResourceSeverities: "severity levels",
	ports.ResourceCritical:   "critical incidents",
}

// Demo wraps a source with an artificial delay and random failures, the way
// the static demo feed behaves.
type Demo struct {
	next      ports.Source
	delay     time.Duration
	errorRate float64
	roll      func() float64
}

func NewDemo(next ports.Source, delay time.Duration, errorRate float64) *Demo {
	return &Demo{next: next, delay: delay, errorRate: errorRate, roll: rand.Float64}
}

func (d *Demo) Fetch(ctx context.Context, r ports.Resource) ([]byte, error) {
	if d.delay > 0 {
		t := time.NewTimer(d.delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	if d.errorRate > 0 && d.roll() < d.errorRate {
		label, ok := demoLabels[r]
		if !ok {
			label = string(r)
		}
		return nil, fmt.Errorf("Simulated API failure for %s", label)
	}
	return d.next.Fetch(ctx, r)
}

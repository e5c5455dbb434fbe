// Package clock provides the wall-clock Ticker adapter.
package clock

import (
	"time"

	"golang-netenforce/internal/port"
)

// TickerAdapter implements the Ticker port on top of time.Ticker.
type TickerAdapter struct {
	ticker   *time.Ticker
	interval time.Duration
}

// Ensure TickerAdapter implements the Ticker port
var _ port.Ticker = (*TickerAdapter)(nil)

// NewTickerAdapter starts a ticker firing every interval.
func NewTickerAdapter(interval time.Duration) *TickerAdapter {
	return &TickerAdapter{
		ticker:   time.NewTicker(interval),
		interval: interval,
	}
}

func (t *TickerAdapter) C() <-chan time.Time {
	return t.ticker.C
}

// Reset restarts the interval so the next event is a full interval away,
// however long the caller spent since the previous one.
func (t *TickerAdapter) Reset() {
	t.ticker.Reset(t.interval)
	select {
	case <-t.ticker.C:
	default:
	}
}

func (t *TickerAdapter) Stop() {
	t.ticker.Stop()
}

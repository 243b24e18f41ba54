package services

import (
	"sync"
	"sync/atomic"
	"time"

	"mtdstore-client/internal/utils"
)

// DueDisplay is the terminal countdown display once the delivery
// target has passed. The countdown freezes on it; it never transitions
// workflow state.
const DueDisplay = "Delivery Due!"

// activeCountdowns counts live countdown tickers. Exactly one may be
// active at a time in normal operation; tests assert on this.
var activeCountdowns int32

// ActiveCountdowns returns the number of countdown tickers currently
// running.
func ActiveCountdowns() int {
	return int(atomic.LoadInt32(&activeCountdowns))
}

// Countdown recomputes a delivery countdown display once per tick and
// publishes it through the onTick callback. It is pure presentation
// derived from wall-clock time: reaching the target freezes the
// display and stops the ticker without touching workflow state. The
// handle owns its ticker; Stop is idempotent and must be called when
// the payment stage is exited, so a countdown can never outlive the
// view that created it.
type Countdown struct {
	target time.Time
	tick   time.Duration
	now    func() time.Time
	onTick func(display string)

	mu      sync.Mutex
	stopCh  chan struct{}
	stopped bool
}

// NewCountdown creates a countdown toward target. now is injectable
// for tests; onTick receives every formatted display update.
func NewCountdown(target time.Time, tick time.Duration, now func() time.Time, onTick func(string)) *Countdown {
	if now == nil {
		now = time.Now
	}
	if tick <= 0 {
		tick = time.Second
	}
	return &Countdown{
		target: target,
		tick:   tick,
		now:    now,
		onTick: onTick,
		stopCh: make(chan struct{}),
	}
}

// Start emits the current display immediately and then once per tick.
func (c *Countdown) Start() {
	atomic.AddInt32(&activeCountdowns, 1)
	c.emit()
	go c.run()
}

func (c *Countdown) run() {
	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			if c.emit() {
				c.Stop()
				return
			}
		}
	}
}

// emit publishes the current display and reports whether the target
// has been reached.
func (c *Countdown) emit() (due bool) {
	remaining := c.target.Sub(c.now())
	if c.onTick != nil {
		c.onTick(FormatCountdown(remaining))
	}
	return remaining <= 0
}

// Remaining returns the time left until the delivery target.
func (c *Countdown) Remaining() time.Duration {
	return c.target.Sub(c.now())
}

// Stop cancels the ticker. Safe to call more than once and after the
// countdown has frozen on its own.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.stopped = true
	close(c.stopCh)
	atomic.AddInt32(&activeCountdowns, -1)
}

// FormatCountdown renders a remaining duration as hh:mm:ss, or the
// frozen due display at or past the target.
func FormatCountdown(remaining time.Duration) string {
	if remaining <= 0 {
		return DueDisplay
	}
	return utils.FormatClock(remaining)
}

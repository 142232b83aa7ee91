// Package countdown runs the short "Starts in N" delay shown before
// calibration and the camera view open.
package countdown

import (
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultSeconds is the delay used when none is configured
const DefaultSeconds = 3

// Outcome is how a countdown ended
type Outcome int

const (
	Pending Outcome = iota
	Finished
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Finished:
		return "finished"
	case Cancelled:
		return "cancelled"
	default:
		return "pending"
	}
}

// TickMsg advances the countdown with the matching ID
type TickMsg struct {
	ID   int
	Time time.Time
}

// DoneMsg is sent once when a countdown reaches zero. Cancel sends nothing.
type DoneMsg struct {
	ID      int
	Purpose string
	Outcome Outcome
}

// Countdown counts whole seconds down to zero. Ticks carry the ID of the
// run that scheduled them, so ticks from a cancelled run are ignored.
type Countdown struct {
	mu        sync.Mutex
	id        int
	seconds   int
	remaining int
	interval  time.Duration
	purpose   string
	outcome   Outcome
	running   bool
}

// New creates a countdown of seconds (at least one)
func New(seconds int) *Countdown {
	if seconds < 1 {
		seconds = 1
	}
	return &Countdown{seconds: seconds, interval: time.Second}
}

// WithInterval changes the tick period
func (c *Countdown) WithInterval(d time.Duration) *Countdown {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interval = d
	return c
}

// Start begins a new run for purpose and returns the first tick
func (c *Countdown) Start(purpose string) tea.Cmd {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.id++
	c.remaining = c.seconds
	c.purpose = purpose
	c.outcome = Pending
	c.running = true
	return c.tickLocked()
}

func (c *Countdown) tickLocked() tea.Cmd {
	id := c.id
	return tea.Tick(c.interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}

// Update handles a tick. It returns the next tick while running, or a
// command emitting DoneMsg when the count reaches zero.
func (c *Countdown) Update(msg TickMsg) tea.Cmd {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || msg.ID != c.id {
		return nil
	}

	c.remaining--
	if c.remaining > 0 {
		return c.tickLocked()
	}

	c.running = false
	c.outcome = Finished
	done := DoneMsg{ID: c.id, Purpose: c.purpose, Outcome: Finished}
	return func() tea.Msg { return done }
}

// Cancel stops the current run. It returns false when nothing was running.
func (c *Countdown) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return false
	}
	c.running = false
	c.outcome = Cancelled
	return true
}

// Running reports whether a run is in progress
func (c *Countdown) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Remaining returns the seconds left in the current run
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Purpose returns what the current run was started for
func (c *Countdown) Purpose() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.purpose
}

// Outcome returns how the last run ended
func (c *Countdown) Outcome() Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outcome
}

// Label is the text shown while counting
func (c *Countdown) Label() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fmt.Sprintf("Starts in %d", c.remaining)
}

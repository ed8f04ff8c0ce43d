// Package poll waits for a character view to finish rendering.
package poll

import (
	"context"
	"fmt"

	"github.com/williampepple1/party-sheet-scraper/internal/config"
	"github.com/williampepple1/party-sheet-scraper/internal/extraction"
)

// State is the state of a readiness poller
type State int

const (
	Waiting State = iota
	Ready
	TimedOut
)

func (s State) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case Ready:
		return "ready"
	case TimedOut:
		return "timed out"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Fetch returns the current view. A nil view with a nil error means the
// view does not exist yet.
type Fetch func(ctx context.Context) (*extraction.View, error)

// Result is the outcome of a finished poll
type Result struct {
	State    State
	View     *extraction.View
	Attempts int
	Inputs   int
	// LastErr is the most recent fetch error, if any
	LastErr error
}

// Poller checks a view at a fixed interval until it holds at least
// MinInputs inputs (Ready) or MaxAttempts checks have failed (TimedOut).
// A poller is single-shot.
type Poller struct {
	cfg   config.PollConfig
	fetch Fetch

	state    State
	attempts int
	inputs   int
	view     *extraction.View
	lastErr  error
}

// NewPoller creates a poller in the Waiting state
func NewPoller(cfg config.PollConfig, fetch Fetch) *Poller {
	return &Poller{cfg: cfg, fetch: fetch, state: Waiting}
}

func (p *Poller) State() State {
	return p.state
}

// Check runs one readiness check and returns the resulting state. It is a
// no-op once the poller has left Waiting.
func (p *Poller) Check(ctx context.Context) State {
	if p.state != Waiting {
		return p.state
	}
	p.attempts++

	view, err := p.fetch(ctx)
	if err != nil {
		p.lastErr = err
	}
	if view != nil {
		p.inputs = view.InputCount()
		if p.inputs >= p.cfg.MinInputs {
			p.view = view
			p.state = Ready
			return p.state
		}
	}

	if p.attempts >= p.cfg.MaxAttempts {
		p.state = TimedOut
	}
	return p.state
}

// Run waits one interval before every check until the poller leaves
// Waiting. A timeout is reported in the result, not as an error; only
// context cancellation returns an error.
func (p *Poller) Run(ctx context.Context, clock Clock) (Result, error) {
	for p.state == Waiting {
		if err := clock.Sleep(ctx, p.cfg.Interval); err != nil {
			return p.result(), err
		}
		p.Check(ctx)
	}
	return p.result(), nil
}

func (p *Poller) result() Result {
	return Result{
		State:    p.state,
		View:     p.view,
		Attempts: p.attempts,
		Inputs:   p.inputs,
		LastErr:  p.lastErr,
	}
}

package watcher

import (
	"context"
	"time"

	"github.com/privgraph/graphanon/pkg/logging"
)

// Debouncer collapses bursts of change events into one, emitting after a
// quiet period has elapsed or maxWait has passed since the first event of a
// burst, whichever comes first. Re-running an anonymization is expensive, so
// one run per save is the goal.
type Debouncer struct {
	input       <-chan ChangeEvent
	output      chan ChangeEvent
	quietPeriod time.Duration
	maxWait     time.Duration
}

// NewDebouncer wraps input with debouncing.
func NewDebouncer(input <-chan ChangeEvent, quietPeriod, maxWait time.Duration) *Debouncer {
	return &Debouncer{
		input:       input,
		output:      make(chan ChangeEvent, 4),
		quietPeriod: quietPeriod,
		maxWait:     maxWait,
	}
}

// Start begins debouncing until ctx is cancelled or the input closes.
func (d *Debouncer) Start(ctx context.Context) {
	go d.run(ctx)
}

func (d *Debouncer) run(ctx context.Context) {
	var (
		pending  *ChangeEvent
		quiet    <-chan time.Time
		deadline <-chan time.Time
	)

	flush := func() {
		if pending == nil {
			return
		}
		logging.Debug("input file changed", "path", pending.Path)
		d.output <- *pending
		pending, quiet, deadline = nil, nil, nil
	}

	for {
		select {
		case <-ctx.Done():
			close(d.output)
			return

		case event, ok := <-d.input:
			if !ok {
				flush()
				close(d.output)
				return
			}
			if pending == nil {
				deadline = time.After(d.maxWait)
			}
			pending = &event
			quiet = time.After(d.quietPeriod)

		case <-quiet:
			flush()

		case <-deadline:
			flush()
		}
	}
}

// Output returns the channel of debounced events.
func (d *Debouncer) Output() <-chan ChangeEvent {
	return d.output
}

package simulation

import (
	"fmt"
	"time"

	"github.com/KilimcininKorOglu/failover/internal/cluster"
	"github.com/KilimcininKorOglu/failover/internal/eventlog"
	"github.com/KilimcininKorOglu/failover/internal/logging"
)

// Sleeper suspends the running timeline between steps.
type Sleeper interface {
	Sleep(d time.Duration)
}

// SleeperFunc adapts a function to the Sleeper interface.
type SleeperFunc func(time.Duration)

// Sleep calls f(d).
func (f SleeperFunc) Sleep(d time.Duration) {
	f(d)
}

var (
	// RealTime waits for the full step delay.
	RealTime Sleeper = SleeperFunc(time.Sleep)

	// Instant skips every delay.
	Instant Sleeper = SleeperFunc(func(time.Duration) {})
)

// Executor drives a timeline against a store and a log, one step at a time.
type Executor struct {
	sleeper  Sleeper
	onChange func()
}

// NewExecutor creates an executor. onChange is called after every log append
// and every state change; it may be nil.
func NewExecutor(sleeper Sleeper, onChange func()) *Executor {
	if sleeper == nil {
		sleeper = RealTime
	}
	if onChange == nil {
		onChange = func() {}
	}
	return &Executor{
		sleeper:  sleeper,
		onChange: onChange,
	}
}

// Run executes every step of timeline in order. Within a step the messages
// are appended first, then the state change is applied, then the delay
// elapses. A failed whole-list replacement stops the run.
func (e *Executor) Run(store *cluster.Store, log *eventlog.Log, timeline Timeline, logger logging.Logger) error {
	if logger == nil {
		logger = logging.NewNop()
	}

	for i, step := range timeline {
		for _, msg := range step.Messages {
			log.Append(msg)
			e.onChange()
		}

		switch {
		case step.Patch != nil:
			store.ApplyPatch(step.Patch)
			e.onChange()
		case step.Replace != nil:
			if err := store.ReplaceAll(step.Replace(store.Nodes())); err != nil {
				return fmt.Errorf("step %d (%s): %w", i, step.Kind, err)
			}
			e.onChange()
		}

		if step.Outcome != nil {
			if line := step.Outcome(store.Nodes()); line != "" {
				logger.Info(line, "step", step.Kind.String())
			}
		}

		logger.Debug("step applied",
			"step", step.Kind.String(),
			"index", i,
			"mutates", step.Mutates(),
			"delay", step.Delay.String(),
		)

		if step.Delay > 0 {
			e.sleeper.Sleep(step.Delay)
		}
	}

	return nil
}

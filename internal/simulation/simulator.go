package simulation

import (
	"errors"
	"sync"
	"time"

	"github.com/KilimcininKorOglu/failover/internal/cluster"
	"github.com/KilimcininKorOglu/failover/internal/eventlog"
	"github.com/KilimcininKorOglu/failover/internal/logging"
)

// Observer receives a fresh View after every change.
// Observers run on the goroutine that made the change and must not call
// Trigger or Reset.
type Observer interface {
	Observe(View)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(View)

// Observe calls f(v).
func (f ObserverFunc) Observe(v View) {
	f(v)
}

// Options configures a Simulator.
type Options struct {
	// Sleeper paces the timeline. Defaults to RealTime.
	Sleeper Sleeper
	// Coordinator serializes runs. Defaults to a new coordinator.
	Coordinator *Coordinator
	// Logger receives operational logs. Defaults to a no-op logger.
	Logger logging.Logger
}

// Simulator owns both groups and the log, and plays failover timelines on them.
type Simulator struct {
	stores   map[cluster.Kind]*cluster.Store
	log      *eventlog.Log
	coord    *Coordinator
	executor *Executor
	logger   logging.Logger

	// mu serializes Trigger and Reset.
	mu   sync.Mutex
	runs sync.WaitGroup

	obsMu     sync.RWMutex
	observers []subscription
	nextObsID int
}

type subscription struct {
	id  int
	obs Observer
}

// New creates a simulator with both groups at their initial state.
func New(opts Options) *Simulator {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	coord := opts.Coordinator
	if coord == nil {
		coord = NewCoordinator()
	}

	s := &Simulator{
		stores: map[cluster.Kind]*cluster.Store{
			cluster.KindPD:      cluster.NewStore(cluster.KindPD),
			cluster.KindStorage: cluster.NewStore(cluster.KindStorage),
		},
		log:    eventlog.New(),
		coord:  coord,
		logger: logger.WithSource("simulation"),
	}
	s.executor = NewExecutor(opts.Sleeper, s.notify)
	return s
}

// TriggerPDFailover starts a leader failure on the PD group.
func (s *Simulator) TriggerPDFailover() error {
	return s.Trigger(cluster.KindPD)
}

// TriggerStorageFailover starts a leader failure on the TiKV group.
func (s *Simulator) TriggerStorageFailover() error {
	return s.Trigger(cluster.KindStorage)
}

// Trigger starts a leader failure on the group of kind.
//
// It returns ErrSimulationRunning without touching anything while another
// timeline runs. A failed precondition appends one log line and returns
// ErrClusterAlreadyUnavailable or ErrNoActiveLeader. Otherwise the timeline
// starts on its own goroutine and Trigger returns nil.
func (s *Simulator) Trigger(kind cluster.Kind) error {
	_, err := s.Start(kind)
	return err
}

// Start is Trigger returning the state of the run it started.
func (s *Simulator) Start(kind cluster.Kind) (RunState, error) {
	store, ok := s.stores[kind]
	if !ok {
		return RunState{}, cluster.ErrUnknownKind
	}

	state, err := s.trigger(kind, store)
	if !errors.Is(err, ErrSimulationRunning) {
		s.notify()
	}
	return state, err
}

func (s *Simulator) trigger(kind cluster.Kind, store *cluster.Store) (RunState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := s.logger.WithFields("cluster", kind.Slug())

	if state := s.coord.State(); state.Running {
		logger.Debug("failover rejected", "reason", "busy", "running", state.String())
		return RunState{}, ErrSimulationRunning
	}

	script := ScriptFor(kind)
	plan, err := NewPlan(store.Nodes())
	if err != nil {
		s.log.Append(script.Rejection(err))
		logger.Warn("failover precondition failed", "error", err)
		return RunState{}, err
	}

	state, ok := s.coord.TryStart(kind)
	if !ok {
		return RunState{}, ErrSimulationRunning
	}

	timeline := plan.Timeline(script)
	s.runs.Add(1)
	go s.run(state, store, plan, timeline)
	return state, nil
}

func (s *Simulator) run(state RunState, store *cluster.Store, plan Plan, timeline Timeline) {
	defer s.runs.Done()

	logger := s.logger.WithFields("cluster", state.Kind.Slug(), "run_id", state.RunID)
	logger.Info("failover started",
		"leader", plan.Leader.ID,
		"up", plan.UpCount,
		"quorum", plan.Quorum,
		"majority_failure", plan.MajorityFailure,
		"steps", timeline.Kinds(),
		"expected_duration", timeline.Duration().String(),
	)

	if err := s.executor.Run(store, s.log, timeline, logger); err != nil {
		logger.Error("failover aborted", "error", err)
	}

	s.coord.Finish()
	logger.Info("failover finished", "duration", time.Since(state.Started).String())
	s.notify()
}

// Reset restores both groups from their templates and clears the log.
// It returns ErrSimulationRunning and does nothing while a timeline runs.
func (s *Simulator) Reset() error {
	if err := s.reset(); err != nil {
		return err
	}
	s.notify()
	return nil
}

func (s *Simulator) reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.coord.Busy() {
		s.logger.Debug("reset rejected", "reason", "busy")
		return ErrSimulationRunning
	}

	for _, store := range s.stores {
		store.Reset()
	}
	s.log.Clear()
	s.logger.Info("simulation reset")
	return nil
}

// Wait blocks until every started timeline has finished and its observers
// have seen the final view.
func (s *Simulator) Wait() {
	s.runs.Wait()
}

// PDNodes returns the current PD node list.
func (s *Simulator) PDNodes() []cluster.Node {
	return s.stores[cluster.KindPD].Nodes()
}

// StorageNodes returns the current TiKV node list.
func (s *Simulator) StorageNodes() []cluster.Node {
	return s.stores[cluster.KindStorage].Nodes()
}

// Nodes returns the current node list of kind, or nil for an unknown kind.
func (s *Simulator) Nodes(kind cluster.Kind) []cluster.Node {
	store, ok := s.stores[kind]
	if !ok {
		return nil
	}
	return store.Nodes()
}

// LogsSince returns the log lines from index i on and the total line count.
func (s *Simulator) LogsSince(i int) ([]string, int) {
	return s.log.Since(i)
}

// Logs returns the current log lines.
func (s *Simulator) Logs() []string {
	return s.log.Entries()
}

// IsSimulating reports whether a timeline is running.
func (s *Simulator) IsSimulating() bool {
	return s.coord.Busy()
}

// RunState returns the coordinator state.
func (s *Simulator) RunState() RunState {
	return s.coord.State()
}

// View returns a consistent-enough picture of the simulator for rendering.
func (s *Simulator) View() View {
	state := s.coord.State()
	pd := s.PDNodes()
	storage := s.StorageNodes()

	v := View{
		PD:         pd,
		Storage:    storage,
		Logs:       s.Logs(),
		Simulating: state.Running,
		Links:      buildLinks(pd, storage),
	}
	if state.Running {
		v.Running = state.Kind.Slug()
		v.RunID = state.RunID
	}
	return v
}

// Subscribe registers obs and returns a function that removes it.
// Observers are called in subscription order.
func (s *Simulator) Subscribe(obs Observer) func() {
	s.obsMu.Lock()
	id := s.nextObsID
	s.nextObsID++
	s.observers = append(s.observers, subscription{id: id, obs: obs})
	s.obsMu.Unlock()

	return func() {
		s.obsMu.Lock()
		defer s.obsMu.Unlock()
		for i, sub := range s.observers {
			if sub.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

func (s *Simulator) notify() {
	s.obsMu.RLock()
	subs := make([]subscription, len(s.observers))
	copy(subs, s.observers)
	s.obsMu.RUnlock()

	if len(subs) == 0 {
		return
	}

	v := s.View()
	for _, sub := range subs {
		sub.obs.Observe(v)
	}
}

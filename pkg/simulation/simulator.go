package simulation

import (
	"fmt"
	"time"

	"github.com/sherine-k/ovens/pkg/config"
	"github.com/sherine-k/ovens/pkg/estimator"
	"github.com/sirupsen/logrus"
)

// Simulator runs the oven simulation. All run state lives here; a Simulator
// is single-use and not safe for concurrent use.
type Simulator struct {
	ovens     int
	tickDelay time.Duration
	arrivals  []config.Arrival

	tick        int64
	nextArrival int // index into arrivals
	nextID      int // last assigned pizza ID
	done        bool

	backlog   Backlog
	baking    []*Pizza
	completed []*Pizza
	retired   []*Pizza // completed during the current tick

	events     []Event
	timePoints []TimePoint
}

// NewSimulator creates a new simulator. It returns an error wrapping a
// *config.ConfigurationError if cfg is not runnable.
func NewSimulator(cfg *config.Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	arrivals, err := cfg.Arrivals()
	if err != nil {
		return nil, fmt.Errorf("failed to expand orders: %w", err)
	}

	return &Simulator{
		ovens:      cfg.Ovens,
		tickDelay:  cfg.TickDelay,
		arrivals:   arrivals,
		baking:     make([]*Pizza, 0, cfg.Ovens),
		completed:  []*Pizza{},
		events:     []Event{},
		timePoints: []TimePoint{},
	}, nil
}

// Run executes the simulation until every pizza is out of the oven.
func (s *Simulator) Run() error {
	logrus.Infof("Starting simulation with %d ovens and %d orders", s.ovens, len(s.arrivals))

	for !s.done {
		if err := s.Step(); err != nil {
			return err
		}

		// Pacing is presentation only and never changes results.
		if !s.done && s.tickDelay > 0 {
			time.Sleep(s.tickDelay)
		}
	}

	logrus.Infof("Simulation finished at tick %d: %d pizzas baked", s.tick, len(s.completed))
	return nil
}

// Step runs one tick: admission, retirement, dispatch. The clock advances
// by one unless the run is finished.
func (s *Simulator) Step() error {
	if s.done {
		return nil
	}

	s.retired = s.retired[:0]

	s.admit()
	if err := s.checkInvariants("admission"); err != nil {
		return err
	}

	s.retire()
	if err := s.checkInvariants("retirement"); err != nil {
		return err
	}

	s.dispatch()
	if err := s.checkInvariants("dispatch"); err != nil {
		return err
	}

	s.timePoints = append(s.timePoints, TimePoint{
		Tick:      s.tick,
		BusyOvens: len(s.baking),
		Backlog:   s.backlog.Len(),
	})

	if s.nextArrival >= len(s.arrivals) && len(s.completed) == s.nextID {
		s.done = true
		return nil
	}

	s.tick++
	return nil
}

// admit stamps a predicted finish on every pizza arriving this tick and
// appends it to the backlog.
func (s *Simulator) admit() {
	for s.nextArrival < len(s.arrivals) && s.arrivals[s.nextArrival].Tick <= s.tick {
		arrival := s.arrivals[s.nextArrival]
		s.nextArrival++
		s.nextID++

		predicted := estimator.Estimate(s.snapshot(), arrival.BakeTime)

		pizza := &Pizza{
			ID:              s.nextID,
			Name:            arrival.Name,
			Arrival:         s.tick,
			BakeTime:        arrival.BakeTime,
			Start:           NotStarted,
			PredictedFinish: predicted,
			Finish:          NotStarted,
		}
		s.backlog.Enqueue(pizza)

		logrus.Debugf("[tick %07d] admitted pizza %d (%s), predicted finish %d", s.tick, pizza.ID, pizza.Name, predicted)
		s.addEvent(EventTypeAdmission, pizza)
	}
}

// retire frees every oven whose pizza is done.
func (s *Simulator) retire() {
	var done []*Pizza
	remaining := s.baking[:0]
	for _, pizza := range s.baking {
		if pizza.Finish <= s.tick {
			done = append(done, pizza)
		} else {
			remaining = append(remaining, pizza)
		}
	}
	for i := len(remaining); i < len(s.baking); i++ {
		s.baking[i] = nil
	}
	s.baking = remaining

	for _, pizza := range done {
		s.complete(pizza)
	}
}

// dispatch moves backlog pizzas into free ovens in FCFS order. A pizza with
// no bake time is done the moment it starts and never holds its oven.
func (s *Simulator) dispatch() {
	for len(s.baking) < s.ovens && s.backlog.Peek() != nil {
		pizza := s.backlog.Dequeue()
		pizza.Start = s.tick
		pizza.Finish = s.tick + pizza.BakeTime

		logrus.Debugf("[tick %07d] pizza %d into oven, finishes at %d", s.tick, pizza.ID, pizza.Finish)
		if pizza.Finish <= s.tick {
			s.addEvent(EventTypeDispatch, pizza)
			s.complete(pizza)
			continue
		}

		s.baking = append(s.baking, pizza)
		s.addEvent(EventTypeDispatch, pizza)
	}
}

func (s *Simulator) complete(pizza *Pizza) {
	s.completed = append(s.completed, pizza)
	s.retired = append(s.retired, pizza)
	logrus.Debugf("[tick %07d] pizza %d done (predicted %d, actual %d)", s.tick, pizza.ID, pizza.PredictedFinish, pizza.Finish)
	s.addEvent(EventTypeCompletion, pizza)
}

func (s *Simulator) snapshot() estimator.Snapshot {
	busyUntil := make([]int64, len(s.baking))
	for i, pizza := range s.baking {
		busyUntil[i] = pizza.Finish
	}
	return estimator.Snapshot{
		Now:       s.tick,
		Ovens:     s.ovens,
		BusyUntil: busyUntil,
		Backlog:   s.backlog.BakeTimes(),
	}
}

// addEvent adds an event to the event list
func (s *Simulator) addEvent(eventType EventType, pizza *Pizza) {
	event := Event{
		Tick:      s.tick,
		Type:      eventType,
		PizzaID:   pizza.ID,
		Name:      pizza.Name,
		BusyOvens: len(s.baking),
		Backlog:   s.backlog.Len(),
	}
	if eventType == EventTypeAdmission {
		event.PredictedFinish = pizza.PredictedFinish
	}
	s.events = append(s.events, event)
}

// GetEvents returns all events
func (s *Simulator) GetEvents() []Event {
	return s.events
}

// GetTimePoints returns the kitchen state at the end of every tick
func (s *Simulator) GetTimePoints() []TimePoint {
	return s.timePoints
}

// GetCompleted returns baked pizzas in completion order
func (s *Simulator) GetCompleted() []*Pizza {
	return s.completed
}

// GetSpans returns the oven occupancy of every baked pizza
func (s *Simulator) GetSpans() []Span {
	spans := make([]Span, len(s.completed))
	for i, pizza := range s.completed {
		spans[i] = Span{Start: pizza.Start, Finish: pizza.Finish}
	}
	return spans
}

// Ovens returns the number of ovens
func (s *Simulator) Ovens() int {
	return s.ovens
}

// Tick returns the current tick; after Run it is the tick the run ended on.
func (s *Simulator) Tick() int64 {
	return s.tick
}

// Done reports whether every known pizza has been baked.
func (s *Simulator) Done() bool {
	return s.done
}

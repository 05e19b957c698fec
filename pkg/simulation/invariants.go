package simulation

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// InvariantViolation means the simulator reached a state it must never be in.
// It indicates a bug, not bad input, and aborts the run.
type InvariantViolation struct {
	Tick   int64
	Phase  string
	Reason string
	State  string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violated at tick %d after %s: %s\n%s", e.Tick, e.Phase, e.Reason, e.State)
}

// checkInvariants verifies capacity, conservation, uniqueness and FCFS order.
func (s *Simulator) checkInvariants(phase string) error {
	if reason := s.violation(); reason != "" {
		err := &InvariantViolation{
			Tick:   s.tick,
			Phase:  phase,
			Reason: reason,
			State:  s.dumpState(),
		}
		logrus.WithFields(logrus.Fields{
			"tick":      s.tick,
			"phase":     phase,
			"backlog":   s.backlog.String(),
			"baking":    pizzaList(s.baking),
			"completed": pizzaList(s.completed),
		}).Error(reason)
		return err
	}
	return nil
}

// violation only walks the backlog, the ovens and the pizzas retired this
// tick. Older completed pizzas were checked when they left their oven and
// never change afterwards.
func (s *Simulator) violation() string {
	if len(s.baking) > s.ovens {
		return fmt.Sprintf("%d pizzas baking in %d ovens", len(s.baking), s.ovens)
	}

	total := s.backlog.Len() + len(s.baking) + len(s.completed)
	if total != s.nextID {
		return fmt.Sprintf("%d pizzas tracked but %d admitted", total, s.nextID)
	}

	seen := make(map[int]string, s.backlog.Len()+len(s.baking)+len(s.retired))
	track := func(where string, pizzas []*Pizza) string {
		for _, p := range pizzas {
			if prev, ok := seen[p.ID]; ok {
				return fmt.Sprintf("pizza %d is in both %s and %s", p.ID, prev, where)
			}
			seen[p.ID] = where
		}
		return ""
	}
	if reason := track("backlog", s.backlog.Items()); reason != "" {
		return reason
	}
	if reason := track("ovens", s.baking); reason != "" {
		return reason
	}
	if reason := track("completed", s.retired); reason != "" {
		return reason
	}

	lastID := 0
	for _, p := range s.backlog.Items() {
		if p.Start != NotStarted {
			return fmt.Sprintf("waiting pizza %d has start %d", p.ID, p.Start)
		}
		if p.ID <= lastID {
			return fmt.Sprintf("backlog out of order: pizza %d after %d", p.ID, lastID)
		}
		lastID = p.ID
	}

	for _, pizzas := range [][]*Pizza{s.baking, s.retired} {
		for _, p := range pizzas {
			if p.Start == NotStarted || p.Finish != p.Start+p.BakeTime {
				return fmt.Sprintf("pizza %d has start %d, bake %d, finish %d", p.ID, p.Start, p.BakeTime, p.Finish)
			}
		}
	}

	return ""
}

func (s *Simulator) dumpState() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("tick=%d ovens=%d admitted=%d pending arrivals=%d\n",
		s.tick, s.ovens, s.nextID, len(s.arrivals)-s.nextArrival))
	sb.WriteString(fmt.Sprintf("backlog:   %s\n", s.backlog.String()))
	sb.WriteString(fmt.Sprintf("baking:    %s\n", pizzaList(s.baking)))
	sb.WriteString(fmt.Sprintf("completed: %s", pizzaList(s.completed)))
	return sb.String()
}

func pizzaList(pizzas []*Pizza) string {
	parts := make([]string, len(pizzas))
	for i, p := range pizzas {
		parts[i] = p.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

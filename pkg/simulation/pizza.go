package simulation

import (
	"fmt"
	"strings"
)

// NotStarted marks a pizza that has not entered an oven yet.
const NotStarted int64 = -1

// Pizza is one order moving through the kitchen.
type Pizza struct {
	ID              int
	Name            string
	Arrival         int64
	BakeTime        int64
	Start           int64 // NotStarted until dispatched
	PredictedFinish int64 // stamped once at admission, never revised
	Finish          int64 // Start + BakeTime once dispatched
}

func (p *Pizza) String() string {
	return fmt.Sprintf("#%d(arrival=%d bake=%d start=%d predicted=%d finish=%d)",
		p.ID, p.Arrival, p.BakeTime, p.Start, p.PredictedFinish, p.Finish)
}

// Span is the part of a completed pizza read by utilization reports.
type Span struct {
	Start  int64
	Finish int64
}

// Backlog is the FIFO queue of pizzas waiting for a free oven.
type Backlog struct {
	queue []*Pizza
}

// Enqueue adds a pizza to the back of the backlog.
func (b *Backlog) Enqueue(p *Pizza) {
	b.queue = append(b.queue, p)
}

// Dequeue removes the pizza at the front of the backlog.
// Returns nil if the backlog is empty.
func (b *Backlog) Dequeue() *Pizza {
	if len(b.queue) == 0 {
		return nil
	}
	p := b.queue[0]
	b.queue[0] = nil
	b.queue = b.queue[1:]
	return p
}

// Peek returns the pizza at the front without removing it, or nil.
func (b *Backlog) Peek() *Pizza {
	if len(b.queue) == 0 {
		return nil
	}
	return b.queue[0]
}

// Len returns the number of waiting pizzas.
func (b *Backlog) Len() int {
	return len(b.queue)
}

// Items returns the backlog in FCFS order. Callers must not modify it.
func (b *Backlog) Items() []*Pizza {
	return b.queue
}

// BakeTimes returns the bake times of the waiting pizzas in FCFS order.
func (b *Backlog) BakeTimes() []int64 {
	times := make([]int64, len(b.queue))
	for i, p := range b.queue {
		times[i] = p.BakeTime
	}
	return times
}

func (b *Backlog) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, p := range b.queue {
		sb.WriteString(p.String())
		if i < len(b.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

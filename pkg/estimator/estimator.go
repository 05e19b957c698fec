// Package estimator predicts when a newly arriving pizza will come out of the
// oven, assuming every pizza already waiting is baked first-come-first-served
// in whichever oven frees up soonest.
package estimator

import "container/heap"

// Snapshot is the read-only view of the kitchen the estimate is based on.
type Snapshot struct {
	Now       int64   // current tick
	Ovens     int     // total number of ovens
	BusyUntil []int64 // finish tick of every occupied oven, each >= Now
	Backlog   []int64 // bake times of waiting pizzas, in FCFS order
}

// Estimate returns the predicted finish tick for a pizza with the given bake
// time if it were appended to the backlog of s. It never mutates s and holds
// no state, so repeated calls with the same snapshot return the same value.
func Estimate(s Snapshot, bakeTime int64) int64 {
	if len(s.BusyUntil) < s.Ovens || len(s.BusyUntil) == 0 {
		return s.Now + bakeTime
	}

	// An oven whose pizza is already done is free now, not in the past.
	free := make(freeTimes, len(s.BusyUntil))
	for i, t := range s.BusyUntil {
		free[i] = max(t, s.Now)
	}
	heap.Init(&free)

	for _, bake := range s.Backlog {
		free[0] += bake
		heap.Fix(&free, 0)
	}

	return free[0] + bakeTime
}

// freeTimes is a min-heap of oven free ticks.
type freeTimes []int64

func (f freeTimes) Len() int { return len(f) }

func (f freeTimes) Less(i, j int) bool { return f[i] < f[j] }

func (f freeTimes) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

// Push and Pop satisfy heap.Interface. The heap never grows or shrinks, so
// only Init and Fix are used and neither calls them.
func (f *freeTimes) Push(x any) {
	*f = append(*f, x.(int64))
}

func (f *freeTimes) Pop() any {
	old := *f
	n := len(old)
	t := old[n-1]
	*f = old[:n-1]
	return t
}

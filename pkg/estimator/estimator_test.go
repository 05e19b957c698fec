package estimator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimate_IdleOven_FinishesAfterBakeTime(t *testing.T) {
	// GIVEN 3 ovens with 2 busy
	s := Snapshot{Now: 3, Ovens: 3, BusyUntil: []int64{17, 14}}

	// WHEN a 15-tick pizza is estimated
	got := Estimate(s, 15)

	// THEN it starts immediately
	assert.Equal(t, int64(18), got)
}

func TestEstimate_IdleOven_IgnoresBacklog(t *testing.T) {
	// GIVEN an idle oven and pizzas already waiting from this tick
	s := Snapshot{Now: 0, Ovens: 2, BusyUntil: []int64{10}, Backlog: []int64{30, 30}}

	// WHEN estimated
	got := Estimate(s, 5)

	// THEN the idle oven wins regardless of the backlog
	assert.Equal(t, int64(5), got)
}

func TestEstimate_AllBusy_WaitsForEarliestOven(t *testing.T) {
	// GIVEN one oven busy until 10
	s := Snapshot{Now: 1, Ovens: 1, BusyUntil: []int64{10}}

	// WHEN a 5-tick pizza is estimated
	got := Estimate(s, 5)

	// THEN it starts at 10
	assert.Equal(t, int64(15), got)
}

func TestEstimate_Backlog_ConsumedFCFSIntoSoonestOven(t *testing.T) {
	// GIVEN two ovens free at 10 and 12, and a backlog of 5 then 20
	s := Snapshot{Now: 4, Ovens: 2, BusyUntil: []int64{12, 10}, Backlog: []int64{5, 20}}

	// WHEN a 3-tick pizza is estimated
	got := Estimate(s, 3)

	// THEN 5 goes to the oven free at 10 (-> 15), 20 goes to the oven free at 12 (-> 32),
	// and the new pizza starts at 15
	assert.Equal(t, int64(18), got)
}

func TestEstimate_EqualFreeTimes_TieBreakIrrelevant(t *testing.T) {
	// GIVEN three ovens that all free up together
	s := Snapshot{Now: 0, Ovens: 3, BusyUntil: []int64{8, 8, 8}, Backlog: []int64{4, 4, 4, 4}}

	// WHEN estimated
	got := Estimate(s, 1)

	// THEN the fourth backlog pizza lands at 12 -> 16, ovens are free at 12, 12, 16
	assert.Equal(t, int64(13), got)
}

func TestEstimate_ZeroBakeTime_FinishesAtStart(t *testing.T) {
	s := Snapshot{Now: 7, Ovens: 1, BusyUntil: []int64{9}}

	assert.Equal(t, int64(9), Estimate(s, 0))
	assert.Equal(t, int64(7), Estimate(Snapshot{Now: 7, Ovens: 1}, 0))
}

func TestEstimate_OvenAlreadyDone_TreatedAsFreeNow(t *testing.T) {
	// GIVEN the only oven holds a pizza that finished before now
	s := Snapshot{Now: 6, Ovens: 1, BusyUntil: []int64{5}}

	// WHEN estimated
	got := Estimate(s, 3)

	// THEN the pizza cannot start before now
	assert.Equal(t, int64(9), got)
}

func TestEstimate_Pure_SameSnapshotSameResult_InputsUntouched(t *testing.T) {
	// GIVEN a saturated snapshot
	busy := []int64{20, 11, 15}
	backlog := []int64{7, 3, 9, 1}
	s := Snapshot{Now: 10, Ovens: 3, BusyUntil: busy, Backlog: backlog}

	// WHEN estimated twice
	first := Estimate(s, 6)
	second := Estimate(s, 6)

	// THEN results match and inputs are unmodified
	assert.Equal(t, first, second)
	assert.Equal(t, []int64{20, 11, 15}, busy)
	assert.Equal(t, []int64{7, 3, 9, 1}, backlog)
}

func TestEstimate_MatchesNaiveResort(t *testing.T) {
	// GIVEN a range of saturated snapshots
	cases := []Snapshot{
		{Now: 0, Ovens: 1, BusyUntil: []int64{3}, Backlog: []int64{1, 2, 3}},
		{Now: 5, Ovens: 2, BusyUntil: []int64{9, 6}, Backlog: []int64{10, 1, 1, 8}},
		{Now: 2, Ovens: 4, BusyUntil: []int64{2, 40, 3, 17}, Backlog: []int64{5, 5, 5, 5, 5, 5, 5}},
	}

	for _, s := range cases {
		// WHEN estimated with the heap and with a per-step minimum scan
		got := Estimate(s, 4)

		// THEN both agree
		assert.Equal(t, naiveEstimate(s, 4), got)
	}
}

func naiveEstimate(s Snapshot, bakeTime int64) int64 {
	free := append([]int64(nil), s.BusyUntil...)
	minIdx := func() int {
		m := 0
		for i := range free {
			if free[i] < free[m] {
				m = i
			}
		}
		return m
	}
	for _, bake := range s.Backlog {
		free[minIdx()] += bake
	}
	return free[minIdx()] + bakeTime
}

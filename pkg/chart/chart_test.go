package chart

import (
	"strings"
	"testing"

	"github.com/sherine-k/ovens/pkg/simulation"
	"github.com/sherine-k/ovens/pkg/utilization"
	"github.com/stretchr/testify/assert"
)

func TestGenerateOvenChart_Empty_ReturnsPlaceholder(t *testing.T) {
	assert.Equal(t, "No data to display", NewGenerator().GenerateOvenChart(nil, 2))
}

func TestGenerateOvenChart_BacklogAndOvens_DrawsBothSections(t *testing.T) {
	// GIVEN one oven fully busy with one pizza waiting on the middle tick
	points := []simulation.TimePoint{
		{Tick: 0, BusyOvens: 1, Backlog: 0},
		{Tick: 1, BusyOvens: 1, Backlog: 1},
		{Tick: 2, BusyOvens: 0, Backlog: 0},
	}

	// WHEN rendered
	out := NewGenerator().GenerateOvenChart(points, 1)

	// THEN the backlog row and the oven row are drawn
	lines := strings.Split(out, "\n")
	assert.Contains(t, lines, "  2 | * ")
	assert.Contains(t, lines, "  1 |██ ")
	assert.Contains(t, out, "* - Pizza waiting for an oven")
	assert.Contains(t, out, "Oven Usage Over Time")
}

func TestGenerateOvenChart_NoBacklog_OmitsBacklogLegend(t *testing.T) {
	points := []simulation.TimePoint{{Tick: 0, BusyOvens: 2}}

	out := NewGenerator().GenerateOvenChart(points, 3)

	assert.NotContains(t, out, "Backlog rows")
	assert.Contains(t, out, "Ovens (1-3)")
}

func TestGenerateUtilizationTable_ListsWindowsAndOverall(t *testing.T) {
	windows := []utilization.Window{
		{Start: 0, End: 10, Used: 5, Percent: 50},
		{Start: 10, End: 20, Used: 5, Percent: 50},
	}

	out := NewGenerator().GenerateUtilizationTable(windows, 1)

	assert.Contains(t, out, "[0, 10)")
	assert.Contains(t, out, "[10, 20)")
	assert.Contains(t, out, "  50% ")
	assert.Contains(t, out, "Overall: 50% of 1 ovens")
}

func TestGenerateEventSummary_CountsByType(t *testing.T) {
	events := []simulation.Event{
		{Type: simulation.EventTypeAdmission},
		{Type: simulation.EventTypeAdmission},
		{Type: simulation.EventTypeDispatch},
		{Type: simulation.EventTypeCompletion},
	}

	out := NewGenerator().GenerateEventSummary(events)

	assert.Contains(t, out, "Total Events: 4")
	assert.Contains(t, out, "Pizzas Admitted: 2")
	assert.Contains(t, out, "Into Ovens: 1")
	assert.Contains(t, out, "Completed: 1")
}

func TestGenerateForecastReport_ClassifiesPredictions(t *testing.T) {
	// GIVEN one exact, one late and one early forecast
	pizzas := []*simulation.Pizza{
		{ID: 1, PredictedFinish: 10, Finish: 10},
		{ID: 2, PredictedFinish: 5, Finish: 15},
		{ID: 3, PredictedFinish: 20, Finish: 18},
	}

	// WHEN rendered
	out := NewGenerator().GenerateForecastReport(pizzas)

	// THEN the late pizza is called out and the error averaged
	assert.Contains(t, out, "pizza 2 finished 10 ticks later than promised (5)")
	assert.Contains(t, out, "On time: 1")
	assert.Contains(t, out, "Late:    1")
	assert.Contains(t, out, "Early:   1")
	assert.Contains(t, out, "Mean absolute error: 4.00 ticks")
}

func TestGenerateDetailedTimeline_RespectsLimit(t *testing.T) {
	events := []simulation.Event{
		{Tick: 0, Type: simulation.EventTypeAdmission, PizzaID: 1, Name: "margherita", PredictedFinish: 15},
		{Tick: 0, Type: simulation.EventTypeDispatch, PizzaID: 1, BusyOvens: 1},
		{Tick: 15, Type: simulation.EventTypeCompletion, PizzaID: 1},
	}

	out := NewGenerator().GenerateDetailedTimeline(events, 2)

	assert.Contains(t, out, "showing first 2 events")
	assert.Contains(t, out, "Pizza 1 (margherita) ordered, predicted ready at 15")
	assert.Contains(t, out, "[     0] > [1 busy, 0 waiting] Pizza 1 into the oven")
	assert.NotContains(t, out, "ready\n")
	assert.Contains(t, out, "... and 1 more events")
}

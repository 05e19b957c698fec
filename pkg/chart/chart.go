package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sherine-k/ovens/pkg/simulation"
	"github.com/sherine-k/ovens/pkg/utilization"
)

const (
	chartWidth = 80
	barWidth   = 40
)

// Generator renders simulation results as text. It holds styling only and
// never reads simulator state directly.
type Generator struct {
	width int
	title lipgloss.Style
	muted lipgloss.Style
	alert lipgloss.Style
}

// NewGenerator creates a new chart generator
func NewGenerator() *Generator {
	return &Generator{
		width: chartWidth,
		title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")),
		muted: lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
		alert: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
	}
}

func (g *Generator) header(sb *strings.Builder, title string) {
	sb.WriteString("\n")
	sb.WriteString(g.title.Render(title))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")
}

// GenerateOvenChart generates an ASCII chart of busy ovens and backlog over time
func (g *Generator) GenerateOvenChart(timePoints []simulation.TimePoint, ovens int) string {
	if len(timePoints) == 0 {
		return "No data to display"
	}

	var sb strings.Builder
	g.header(&sb, "Oven Usage Over Time")

	plotWidth := g.width - 6
	columns := min(len(timePoints), plotWidth)
	sample := func(x int) simulation.TimePoint {
		if columns == 1 {
			return timePoints[0]
		}
		i := int(float64(x) / float64(columns-1) * float64(len(timePoints)-1))
		return timePoints[min(i, len(timePoints)-1)]
	}

	maxBacklog := 0
	for _, tp := range timePoints {
		maxBacklog = max(maxBacklog, tp.Backlog)
	}

	// Backlog rows above the oven rows
	for row := ovens + maxBacklog; row > ovens; row-- {
		sb.WriteString(fmt.Sprintf("%3d |", row))
		for x := 0; x < columns; x++ {
			if sample(x).Backlog >= row-ovens {
				sb.WriteString("*")
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}

	if maxBacklog > 0 {
		sb.WriteString("    ")
		sb.WriteString(strings.Repeat("-", g.width-4))
		sb.WriteString("\n")
	}

	for oven := ovens; oven >= 1; oven-- {
		sb.WriteString(fmt.Sprintf("%3d |", oven))
		for x := 0; x < columns; x++ {
			if sample(x).BusyOvens >= oven {
				sb.WriteString("█")
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString("    +")
	sb.WriteString(strings.Repeat("-", columns))
	sb.WriteString("\n")

	// Tick markers roughly every tenth of the plot
	first := timePoints[0].Tick
	last := timePoints[len(timePoints)-1].Tick
	labelLine := []rune(strings.Repeat(" ", columns+1))
	step := max(1, int64(math.Ceil(float64(last-first)/10)))
	for tick := first; tick <= last; tick += step {
		position := 0
		if last > first {
			position = int(float64(tick-first) / float64(last-first) * float64(columns-1))
		}
		marker := fmt.Sprintf("%d", tick)
		if position+len(marker) > len(labelLine) {
			break
		}
		for i, ch := range marker {
			labelLine[position+i] = ch
		}
	}
	sb.WriteString("     ")
	sb.WriteString(strings.TrimRight(string(labelLine), " "))
	sb.WriteString("\n")

	sb.WriteString("\n")
	sb.WriteString("Legend:\n")
	sb.WriteString(fmt.Sprintf("  Ovens (1-%d):\n", ovens))
	sb.WriteString("    █ - Baking\n")
	sb.WriteString("    (space) - Idle\n")
	if maxBacklog > 0 {
		sb.WriteString(fmt.Sprintf("  Backlog rows (>%d):\n", ovens))
		sb.WriteString("    * - Pizza waiting for an oven\n")
	}
	sb.WriteString("\n")

	return sb.String()
}

// GenerateUtilizationTable renders per-window oven utilization
func (g *Generator) GenerateUtilizationTable(windows []utilization.Window, ovens int) string {
	var sb strings.Builder
	g.header(&sb, "Oven Utilization")

	if len(windows) == 0 {
		sb.WriteString("No windows to report\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("%-13s %10s %5s\n", "Window", "Used", "%"))
	for _, w := range windows {
		filled := w.Percent * barWidth / 100
		sb.WriteString(fmt.Sprintf("%-13s %10d %4d%% %s\n",
			fmt.Sprintf("[%d, %d)", w.Start, w.End),
			w.Used,
			w.Percent,
			strings.Repeat("█", filled)+g.muted.Render(strings.Repeat("·", barWidth-filled))))
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Overall: %d%% of %d ovens\n", utilization.Overall(windows, ovens), ovens))
	sb.WriteString("\n")

	return sb.String()
}

// GenerateEventSummary generates a summary of events
func (g *Generator) GenerateEventSummary(events []simulation.Event) string {
	var sb strings.Builder
	g.header(&sb, "Event Summary")

	eventsByType := make(map[simulation.EventType]int)
	for _, event := range events {
		eventsByType[event.Type]++
	}

	sb.WriteString(fmt.Sprintf("Total Events: %d\n", len(events)))
	sb.WriteString(fmt.Sprintf("  - Pizzas Admitted: %d\n", eventsByType[simulation.EventTypeAdmission]))
	sb.WriteString(fmt.Sprintf("  - Into Ovens: %d\n", eventsByType[simulation.EventTypeDispatch]))
	sb.WriteString(fmt.Sprintf("  - Completed: %d\n", eventsByType[simulation.EventTypeCompletion]))
	sb.WriteString("\n")

	return sb.String()
}

// GenerateForecastReport compares each pizza's predicted finish with what
// actually happened
func (g *Generator) GenerateForecastReport(pizzas []*simulation.Pizza) string {
	var sb strings.Builder
	g.header(&sb, "Forecast Accuracy")

	if len(pizzas) == 0 {
		sb.WriteString("No pizzas baked\n")
		return sb.String()
	}

	exact, late, early := 0, 0, 0
	var totalError int64
	for _, p := range pizzas {
		diff := p.Finish - p.PredictedFinish
		switch {
		case diff == 0:
			exact++
		case diff > 0:
			late++
			sb.WriteString(g.alert.Render(fmt.Sprintf("[tick %d] pizza %d finished %d ticks later than promised (%d)",
				p.Finish, p.ID, diff, p.PredictedFinish)))
			sb.WriteString("\n")
		default:
			early++
		}
		totalError += max(diff, -diff)
	}

	if late > 0 {
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("On time: %d\n", exact))
	sb.WriteString(fmt.Sprintf("Late:    %d\n", late))
	sb.WriteString(fmt.Sprintf("Early:   %d\n", early))
	sb.WriteString(fmt.Sprintf("Mean absolute error: %.2f ticks\n", float64(totalError)/float64(len(pizzas))))
	sb.WriteString("\n")

	return sb.String()
}

// GenerateDetailedTimeline generates a detailed timeline of events
func (g *Generator) GenerateDetailedTimeline(events []simulation.Event, limit int) string {
	var sb strings.Builder

	title := "Detailed Timeline"
	if limit > 0 && limit < len(events) {
		title += fmt.Sprintf(" (showing first %d events)", limit)
	}
	g.header(&sb, title)

	displayCount := len(events)
	if limit > 0 && limit < displayCount {
		displayCount = limit
	}

	for i := 0; i < displayCount; i++ {
		event := events[i]

		var icon, message string
		switch event.Type {
		case simulation.EventTypeAdmission:
			icon = "+"
			message = fmt.Sprintf("Pizza %d%s ordered, predicted ready at %d", event.PizzaID, label(event.Name), event.PredictedFinish)
		case simulation.EventTypeDispatch:
			icon = ">"
			message = fmt.Sprintf("Pizza %d%s into the oven", event.PizzaID, label(event.Name))
		case simulation.EventTypeCompletion:
			icon = "-"
			message = fmt.Sprintf("Pizza %d%s ready", event.PizzaID, label(event.Name))
		default:
			icon = " "
		}

		sb.WriteString(fmt.Sprintf("[%6d] %s [%d busy, %d waiting] %s\n",
			event.Tick,
			icon,
			event.BusyOvens,
			event.Backlog,
			message))
	}

	if limit > 0 && limit < len(events) {
		sb.WriteString(fmt.Sprintf("\n... and %d more events\n", len(events)-limit))
	}

	sb.WriteString("\n")

	return sb.String()
}

func label(name string) string {
	if name == "" {
		return ""
	}
	return " (" + name + ")"
}

package simulation

// EventType defines the type of event in the simulation
type EventType string

const (
	EventTypeAdmission  EventType = "admission"
	EventTypeDispatch   EventType = "dispatch"
	EventTypeCompletion EventType = "completion"
)

// Event represents a point-in-time event in the simulation
type Event struct {
	Tick    int64
	Type    EventType
	PizzaID int
	Name    string

	// Only set for admissions
	PredictedFinish int64

	BusyOvens int
	Backlog   int
}

// TimePoint represents the kitchen state at the end of a tick
type TimePoint struct {
	Tick      int64
	BusyOvens int
	Backlog   int
}

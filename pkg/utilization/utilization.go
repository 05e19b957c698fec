// Package utilization computes how busy the ovens were over fixed windows of
// a finished run.
package utilization

import (
	"math"

	"github.com/sherine-k/ovens/pkg/config"
	"github.com/sherine-k/ovens/pkg/simulation"
)

// Window is the oven usage over [Start, End).
type Window struct {
	Start   int64
	End     int64
	Used    int64 // oven-ticks spent baking
	Percent int   // Used / (ovens * window size), rounded
}

// Compute splits [0, finalTick] into windows of windowSize ticks and sums the
// baking time of every span that overlaps each window. At least one window is
// always returned.
func Compute(spans []simulation.Span, ovens int, windowSize int64, finalTick int64) ([]Window, error) {
	if ovens <= 0 {
		return nil, &config.ConfigurationError{Field: "ovens", Reason: "must be greater than 0"}
	}
	if windowSize <= 0 {
		return nil, &config.ConfigurationError{Field: "windowSize", Reason: "must be greater than 0"}
	}

	count := (finalTick + windowSize - 1) / windowSize
	if count < 1 {
		count = 1
	}

	capacity := float64(int64(ovens) * windowSize)
	windows := make([]Window, count)
	for k := range windows {
		start := int64(k) * windowSize
		end := start + windowSize

		var used int64
		for _, span := range spans {
			used += max(0, min(span.Finish, end)-max(span.Start, start))
		}

		windows[k] = Window{
			Start:   start,
			End:     end,
			Used:    used,
			Percent: int(math.Round(float64(used) / capacity * 100)),
		}
	}

	return windows, nil
}

// Overall returns the usage percentage across all windows.
func Overall(windows []Window, ovens int) int {
	if len(windows) == 0 || ovens <= 0 {
		return 0
	}
	var used, length int64
	for _, w := range windows {
		used += w.Used
		length += w.End - w.Start
	}
	return int(math.Round(float64(used) / float64(int64(ovens)*length) * 100))
}

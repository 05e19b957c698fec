package config

import (
	"time"
)

// Config represents the entire configuration for the oven simulator
type Config struct {
	Ovens      int           `yaml:"ovens"`
	WindowSize int64         `yaml:"windowSize"`
	TickDelay  time.Duration `yaml:"tickDelay,omitempty"`
	Horizon    int64         `yaml:"horizon,omitempty"` // ticks covered by recurring orders
	Orders     []Order       `yaml:"orders"`
}

// Order is a single pizza order, or a recurring one when CronSchedule is set.
type Order struct {
	Name     string `yaml:"name,omitempty"`
	Arrival  int64  `yaml:"arrival,omitempty"`
	BakeTime int64  `yaml:"bakeTime"`

	// For recurring orders, one tick is one minute after Epoch
	CronSchedule string `yaml:"cronSchedule,omitempty"`

	// arrival key present in the file, even if zero
	arrivalSet bool
}

// IsRecurring reports whether the order is expanded from a cron schedule.
func (o Order) IsRecurring() bool {
	return o.CronSchedule != ""
}

// Arrival is one pizza entering the kitchen at a given tick.
type Arrival struct {
	Name     string
	Tick     int64
	BakeTime int64
}

// Epoch is the wall-clock instant that tick 0 maps to when expanding cron
// schedules.
var Epoch = time.Date(2000, time.January, 3, 0, 0, 0, 0, time.UTC)

// MaxHorizon bounds recurring order expansion to one year of minutes.
const MaxHorizon int64 = 366 * 24 * 60

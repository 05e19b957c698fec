package config

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// LoadConfig loads and parses the configuration file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML configuration. Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	var config Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := markExplicitArrivals(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// markExplicitArrivals records which orders spell out an arrival, so that a
// zero arrival next to a cron schedule is still rejected.
func markExplicitArrivals(data []byte, config *Config) error {
	var raw struct {
		Orders []map[string]any `yaml:"orders"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	for i := range raw.Orders {
		if i >= len(config.Orders) {
			break
		}
		_, config.Orders[i].arrivalSet = raw.Orders[i]["arrival"]
	}
	return nil
}

// Validate checks the configuration and returns a *ConfigurationError for the
// first problem found.
func (c *Config) Validate() error {
	if c.Ovens <= 0 {
		return invalid("ovens", "must be greater than 0, got %d", c.Ovens)
	}

	if c.WindowSize <= 0 {
		return invalid("windowSize", "must be greater than 0, got %d", c.WindowSize)
	}

	if c.TickDelay < 0 {
		return invalid("tickDelay", "must not be negative, got %s", c.TickDelay)
	}

	if len(c.Orders) == 0 {
		return invalid("orders", "at least one order must be defined")
	}

	for i, order := range c.Orders {
		field := fmt.Sprintf("orders[%d]", i)

		// Zero is allowed: such a pizza finishes the tick it starts.
		if order.BakeTime < 0 {
			return invalid(field+".bakeTime", "must not be negative, got %d", order.BakeTime)
		}

		if order.Arrival < 0 {
			return invalid(field+".arrival", "must not be negative, got %d", order.Arrival)
		}

		if order.IsRecurring() {
			if order.Arrival != 0 || order.arrivalSet {
				return invalid(field+".arrival", "cannot be combined with cronSchedule")
			}
			if _, err := cronParser.Parse(order.CronSchedule); err != nil {
				return invalid(field+".cronSchedule", "%v", err)
			}
			if c.Horizon <= 0 {
				return invalid("horizon", "must be greater than 0 when recurring orders are defined")
			}
			if c.Horizon > MaxHorizon {
				return invalid("horizon", "must be at most %d ticks, got %d", MaxHorizon, c.Horizon)
			}
		}
	}

	return nil
}

// Arrivals expands the orders into the arrival list fed to the simulator,
// ordered by tick. Orders arriving on the same tick keep their position in the
// configuration.
func (c *Config) Arrivals() ([]Arrival, error) {
	arrivals := []Arrival{}

	for i := range c.Orders {
		order := &c.Orders[i]

		if !order.IsRecurring() {
			arrivals = append(arrivals, Arrival{
				Name:     order.Name,
				Tick:     order.Arrival,
				BakeTime: order.BakeTime,
			})
			continue
		}

		recurring, err := c.expandCron(order)
		if err != nil {
			return nil, err
		}
		arrivals = append(arrivals, recurring...)
	}

	sort.SliceStable(arrivals, func(i, j int) bool {
		return arrivals[i].Tick < arrivals[j].Tick
	})

	return arrivals, nil
}

// expandCron generates one arrival per schedule firing inside [0, Horizon).
func (c *Config) expandCron(order *Order) ([]Arrival, error) {
	schedule, err := cronParser.Parse(order.CronSchedule)
	if err != nil {
		return nil, invalid("cronSchedule", "order %q: %v", order.Name, err)
	}

	arrivals := []Arrival{}
	current := Epoch.Add(-time.Minute)
	for {
		next := schedule.Next(current)
		if next.IsZero() {
			break
		}
		tick := int64(next.Sub(Epoch) / time.Minute)
		if tick >= c.Horizon {
			break
		}

		arrivals = append(arrivals, Arrival{
			Name:     order.Name,
			Tick:     tick,
			BakeTime: order.BakeTime,
		})

		current = next
	}

	return arrivals, nil
}

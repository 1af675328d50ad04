// Package scenario names ready-made simulation configurations and
// resolves them, with optional per-field overrides, into validated
// sim.Config values.
package scenario

import (
	"fmt"
	"sort"

	"github.com/sarchlab/hitlsim/sim"
)

var presets = map[string]sim.Config{
	"defaults": {
		SpawnJitter: sim.DefaultSpawnJitter,
		QueueTime:   sim.DefaultQueueTime,
	},
	"efficient": {
		ItemCount:           5,
		SpawnJitter:         500,
		AutoProcessRate:     0.4,
		ReturnToAgentRate:   0.5,
		QueueTime:           1000,
		AgentProcessingTime: 500,
		MinOrbitTime:        2000,
	},
	"backlog": {
		ItemCount:           12,
		SpawnJitter:         500,
		AutoProcessRate:     0.05,
		ReturnToAgentRate:   0.5,
		QueueTime:           1000,
		AgentProcessingTime: 500,
		MinOrbitTime:        1000,
	},
	"burst": {
		ItemCount:           8,
		SpawnJitter:         500,
		AutoProcessRate:     0.5,
		ReturnToAgentRate:   0.5,
		QueueTime:           1000,
		AgentProcessingTime: 300,
		MinOrbitTime:        1000,
	},
	"steps_back": {
		ItemCount:           10,
		SpawnJitter:         500,
		AutoProcessRate:     0.2,
		ReturnToAgentRate:   0.5,
		QueueTime:           1000,
		AgentProcessingTime: 500,
		MinOrbitTime:        1000,
		StepBackAfterItems:  4,
		OutageDuration:      10000,
	},
	// A slow agent in front of a fast human: the admission queue is the
	// bottleneck.
	"agent_overload": {
		ItemCount:           15,
		SpawnJitter:         500,
		AutoProcessRate:     0.5,
		ReturnToAgentRate:   0.1,
		QueueTime:           500,
		AgentProcessingTime: 2000,
		MinOrbitTime:        1000,
	},
	"low_capacity": {
		ItemCount:           6,
		SpawnJitter:         500,
		AutoProcessRate:     0.5,
		ReturnToAgentRate:   0.1,
		QueueTime:           500,
		AgentProcessingTime: 500,
		MinOrbitTime:        1000,
		MaxInFlight:         1,
	},
	"autonomous": {
		ItemCount:           8,
		SpawnJitter:         500,
		AutoProcessRate:     1.0,
		AgentProcessingTime: 500,
		MinOrbitTime:        2000,
	},
	// A steady, jitter-free inflow so the admission throttle stays
	// exercised while every item waits for direct supervision.
	"closely_supervised": {
		ItemCount:           50,
		InputInterval:       350,
		AgentProcessingTime: 500,
		MinOrbitTime:        1000,
		MaxInFlight:         1,
		SupervisionMean:     1500,
		SupervisionStdDev:   500,
	},
	"unsupervised": {
		ItemCount:           14,
		SpawnJitter:         500,
		RampingSpawn:        true,
		AutoProcessRate:     1.0,
		AgentProcessingTime: 500,
		MinOrbitTime:        1000,
	},
}

// Names lists the available preset names in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Preset returns the named preset before defaulting and validation.
func Preset(name string) (sim.Config, error) {
	cfg, ok := presets[name]
	if !ok {
		return sim.Config{}, fmt.Errorf(
			"unknown scenario %q, available: %v", name, Names())
	}

	return cfg, nil
}

// Resolve merges the overrides over the named preset, fills defaults, and
// validates the result. Override keys follow the configuration field
// names in lowerCamelCase; numeric values may be any integer or float
// type, as produced by flag and JSON decoding.
func Resolve(name string, overrides map[string]any) (sim.Config, error) {
	cfg, err := Preset(name)
	if err != nil {
		return sim.Config{}, err
	}

	for key, value := range overrides {
		if err := applyOverride(&cfg, key, value); err != nil {
			return sim.Config{}, err
		}
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return sim.Config{}, fmt.Errorf("scenario %q: %w", name, err)
	}

	return cfg, nil
}

func applyOverride(cfg *sim.Config, key string, value any) error {
	switch key {
	case "seed":
		n, err := asInt(key, value)
		if err != nil {
			return err
		}
		cfg.Seed = uint32(n)
	case "itemCount":
		return setInt(&cfg.ItemCount, key, value)
	case "spawnJitter":
		return setTime(&cfg.SpawnJitter, key, value)
	case "rampingSpawn":
		return setBool(&cfg.RampingSpawn, key, value)
	case "autoProcessRate":
		return setFloat(&cfg.AutoProcessRate, key, value)
	case "returnToAgentRate":
		return setFloat(&cfg.ReturnToAgentRate, key, value)
	case "minOrbitTime":
		return setTime(&cfg.MinOrbitTime, key, value)
	case "maxOrbitTime":
		return setTime(&cfg.MaxOrbitTime, key, value)
	case "queueTime":
		return setTime(&cfg.QueueTime, key, value)
	case "agentProcessingTime":
		return setTime(&cfg.AgentProcessingTime, key, value)
	case "inputInterval":
		return setTime(&cfg.InputInterval, key, value)
	case "maxInputQueueCapacity":
		return setInt(&cfg.MaxInputQueueCapacity, key, value)
	case "maxInFlight":
		return setInt(&cfg.MaxInFlight, key, value)
	case "supervisionMean":
		return setTime(&cfg.SupervisionMean, key, value)
	case "supervisionStdDev":
		return setTime(&cfg.SupervisionStdDev, key, value)
	case "hasFixedOutage":
		return setBool(&cfg.HasFixedOutage, key, value)
	case "outageStart":
		return setTime(&cfg.OutageStart, key, value)
	case "stepBackAfterItems":
		return setInt(&cfg.StepBackAfterItems, key, value)
	case "outageDuration":
		return setTime(&cfg.OutageDuration, key, value)
	default:
		return fmt.Errorf("unknown configuration key %q", key)
	}

	return nil
}

func setInt(dst *int, key string, value any) error {
	n, err := asInt(key, value)
	if err != nil {
		return err
	}
	*dst = n

	return nil
}

func setTime(dst *sim.VTimeInMs, key string, value any) error {
	f, err := asFloat(key, value)
	if err != nil {
		return err
	}
	*dst = sim.VTimeInMs(f)

	return nil
}

func setFloat(dst *float64, key string, value any) error {
	f, err := asFloat(key, value)
	if err != nil {
		return err
	}
	*dst = f

	return nil
}

func setBool(dst *bool, key string, value any) error {
	b, ok := value.(bool)
	if !ok {
		return fmt.Errorf("key %q wants a boolean, got %T", key, value)
	}
	*dst = b

	return nil
}

func asInt(key string, value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("key %q wants an integer, got %g", key, v)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("key %q wants an integer, got %T", key, value)
	}
}

func asFloat(key string, value any) (float64, error) {
	switch v := value.(type) {
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	case sim.VTimeInMs:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("key %q wants a number, got %T", key, value)
	}
}

package hal

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/unitflow/si"
)

// ChannelConfig is the description of one hardware channel in a channel
// file.
type ChannelConfig struct {
	ID     string   `yaml:"id"`
	Kind   string   `yaml:"kind"`
	Unit   string   `yaml:"unit,omitempty"`
	Scale  *float64 `yaml:"scale,omitempty"`
	Offset float64  `yaml:"offset,omitempty"`
	Min    float64  `yaml:"min,omitempty"`
	Max    float64  `yaml:"max,omitempty"`
}

type channelFile struct {
	Channels []ChannelConfig `yaml:"channels"`
}

// Channel is a validated hardware channel.
type Channel struct {
	ChannelKind

	ID     string
	Unit   si.Unit
	Scale  float64
	Offset float64
	MinIn  float64
	MaxIn  float64
}

// Input wraps a driver handle of a real-valued input channel into a
// ScalableInput that carries the configuration of the channel.
func (c Channel) Input(handle RawInput[float64]) (*ScalableInput[float64], error) {
	if c.Direction != In || c.Type != Real {
		return nil, fmt.Errorf("channel %s of kind %s is not a real-valued input",
			c.ID, c.Name)
	}

	in := NewScalableInput(c.ID, handle, c.Scale, c.Offset, c.MinIn, c.MaxIn)
	in.SetUnit(c.Unit)

	return in, nil
}

// LoadChannels reads and validates a channel file.
func LoadChannels(path string) ([]Channel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read channel file: %w", err)
	}

	return ParseChannels(data)
}

// ParseChannels parses and validates the YAML description of channels.
// Unknown fields are rejected.
func ParseChannels(data []byte) ([]Channel, error) {
	var file channelFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	channels := make([]Channel, 0, len(file.Channels))
	seen := make(map[string]bool)

	for i, cfg := range file.Channels {
		ch, err := buildChannel(cfg)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", i, err)
		}

		if seen[ch.ID] {
			return nil, fmt.Errorf("channel %d: duplicated id %q", i, ch.ID)
		}
		seen[ch.ID] = true

		channels = append(channels, ch)
	}

	return channels, nil
}

func buildChannel(cfg ChannelConfig) (Channel, error) {
	if cfg.ID == "" {
		return Channel{}, errors.New("missing id")
	}

	kind, err := DescribeKind(cfg.Kind)
	if err != nil {
		return Channel{}, err
	}

	unit, ok := UnitOf(cfg.Unit)
	if !ok {
		return Channel{}, fmt.Errorf("%w: %q", ErrUnknownUnit, cfg.Unit)
	}

	if cfg.Min > cfg.Max {
		return Channel{}, fmt.Errorf("min %g is greater than max %g",
			cfg.Min, cfg.Max)
	}

	scale := 1.0
	if cfg.Scale != nil {
		scale = *cfg.Scale
	}

	return Channel{
		ChannelKind: kind,
		ID:          cfg.ID,
		Unit:        unit,
		Scale:       scale,
		Offset:      cfg.Offset,
		MinIn:       cfg.Min,
		MaxIn:       cfg.Max,
	}, nil
}

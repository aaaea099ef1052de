package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// PlayerSettings are the user-tunable options of the terminal player,
// stored as YAML.
type PlayerSettings struct {
	RevealIntervalMs int     `yaml:"revealIntervalMs"`
	TickRateHz       int     `yaml:"tickRateHz"`
	VoiceVolume      float64 `yaml:"voiceVolume"`
	BgmVolume        float64 `yaml:"bgmVolume"`
	SeVolume         float64 `yaml:"seVolume"`
	AutoAdvance      bool    `yaml:"autoAdvance"`
}

func DefaultSettings() *PlayerSettings {
	return &PlayerSettings{
		RevealIntervalMs: 100,
		TickRateHz:       30,
		VoiceVolume:      1.0,
		BgmVolume:        1.0,
		SeVolume:         1.0,
	}
}

// LoadSettings reads path. A missing file yields the defaults; keys absent
// from the file keep their default values. Out-of-range values are clamped.
func LoadSettings(path string) (*PlayerSettings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	s.Clamp()
	return s, nil
}

// Save writes the settings to path.
func (s *PlayerSettings) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Clamp forces every value into its valid range.
func (s *PlayerSettings) Clamp() {
	s.RevealIntervalMs = min(max(s.RevealIntervalMs, 10), 1000)
	s.TickRateHz = min(max(s.TickRateHz, 1), 120)
	s.VoiceVolume = clampVolume(s.VoiceVolume)
	s.BgmVolume = clampVolume(s.BgmVolume)
	s.SeVolume = clampVolume(s.SeVolume)
}

func clampVolume(v float64) float64 {
	return min(max(v, 0), 1)
}

func (s *PlayerSettings) RevealInterval() time.Duration {
	return time.Duration(s.RevealIntervalMs) * time.Millisecond
}

// TickInterval is the frame period of the host loop.
func (s *PlayerSettings) TickInterval() time.Duration {
	return time.Second / time.Duration(s.TickRateHz)
}

package serenity

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds engine settings, usually loaded from a YAML file:
//
//	title: My Game
//	width: 640
//	height: 480
//	targetFPS: 60
//	debug: false
//	logLevel: info
//	storage:
//	  dir: saves
//	audio:
//	  sampleRate: 44100
//	network:
//	  dialTimeout: 5s
//	  requestTimeout: 10s
type Config struct {
	Title     string        `yaml:"title"`
	Width     int           `yaml:"width"`
	Height    int           `yaml:"height"`
	TargetFPS int           `yaml:"targetFPS"`
	Debug     bool          `yaml:"debug"`
	LogLevel  string        `yaml:"logLevel"`
	Storage   StorageConfig `yaml:"storage"`
	Audio     AudioConfig   `yaml:"audio"`
	Network   NetworkConfig `yaml:"network"`
}

// StorageConfig configures the save store.
type StorageConfig struct {
	Dir string `yaml:"dir"`
}

// AudioConfig configures the audio context.
type AudioConfig struct {
	SampleRate int `yaml:"sampleRate"`
}

// NetworkConfig configures the network client.
type NetworkConfig struct {
	DialTimeout    time.Duration `yaml:"dialTimeout"`
	RequestTimeout time.Duration `yaml:"requestTimeout"`
}

// DefaultConfig returns the settings used when no file is supplied.
func DefaultConfig() Config {
	return Config{
		Title:     "Serenity",
		Width:     640,
		Height:    480,
		TargetFPS: 60,
		LogLevel:  "info",
		Storage:   StorageConfig{Dir: "saves"},
		Audio:     AudioConfig{SampleRate: 44100},
		Network: NetworkConfig{
			DialTimeout:    5 * time.Second,
			RequestTimeout: 10 * time.Second,
		},
	}
}

// ParseConfig decodes YAML on top of DefaultConfig and validates the
// result. Unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return ParseConfig(data)
}

// Validate checks the settings for values the engine cannot run with.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid config: window size %dx%d must be positive", c.Width, c.Height)
	}
	if c.TargetFPS <= 0 {
		return fmt.Errorf("invalid config: targetFPS %d must be positive", c.TargetFPS)
	}
	switch c.Audio.SampleRate {
	case 22050, 44100, 48000:
	default:
		return fmt.Errorf("invalid config: unsupported audio sample rate %d", c.Audio.SampleRate)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// FrameInterval returns the refresh interval implied by TargetFPS.
func (c Config) FrameInterval() time.Duration {
	if c.TargetFPS <= 0 {
		return DefaultFrameInterval
	}
	return time.Second / time.Duration(c.TargetFPS)
}

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ModelPathEnv is the environment variable that overrides the transcription
// model path.
const ModelPathEnv = "EVA_VOSK_MODEL"

// Config represents the complete pipeline configuration.
type Config struct {
	Audio         AudioConfig         `yaml:"audio"`
	VAD           VADConfig           `yaml:"vad"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	HTTP          HTTPConfig          `yaml:"http"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// AudioConfig contains capture parameters.
type AudioConfig struct {
	SampleRate      int    `yaml:"sample_rate"`       // Hz
	Channels        int    `yaml:"channels"`          // 1 (mono)
	FramesPerBuffer int    `yaml:"frames_per_buffer"` // samples per capture read
	Device          string `yaml:"device"`            // capture device name
	InputWAV        string `yaml:"input_wav"`         // replay a WAV file instead of the microphone
}

// VADConfig contains the segmentation hysteresis parameters.
type VADConfig struct {
	TriggerThresholdDBFS float64 `yaml:"trigger_threshold_dbfs"`
	TriggerFrames        int     `yaml:"trigger_frames"`
	ReleaseFrames        int     `yaml:"release_frames"`
}

// TranscriptionConfig contains transcription engine configuration.
type TranscriptionConfig struct {
	Enabled         bool   `yaml:"enabled"`
	ModelPath       string `yaml:"model_path"`
	SaveSegmentsDir string `yaml:"save_segments_dir"` // dump each segment as WAV when set
}

// HTTPConfig contains the monitoring HTTP server configuration.
type HTTPConfig struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"`
	Port    int    `yaml:"port"`
}

// LoggingConfig contains logging configuration. Diagnostics default to
// stderr so they do not interleave with the event lines on stdout.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Default returns the compiled defaults: 16 kHz mono capture in 512-sample
// frames and the reference hysteresis tuning.
func Default() *Config {
	return &Config{
		Audio: AudioConfig{
			SampleRate:      16000,
			Channels:        1,
			FramesPerBuffer: 512,
			Device:          "default",
		},
		VAD: VADConfig{
			TriggerThresholdDBFS: -35.0,
			TriggerFrames:        10,
			ReleaseFrames:        20,
		},
		Transcription: TranscriptionConfig{
			Enabled:   true,
			ModelPath: "models/vosk-model-small-en-us-0.15",
		},
		HTTP: HTTPConfig{
			Enabled: false,
			Address: "127.0.0.1",
			Port:    9090,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// Load reads and parses the configuration file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// ApplyEnvOverrides applies environment overrides; currently only the model
// path via EVA_VOSK_MODEL.
func (c *Config) ApplyEnvOverrides() {
	if path := os.Getenv(ModelPathEnv); path != "" {
		c.Transcription.ModelPath = path
	}
}

// Validate performs validation of the whole configuration.
func (c *Config) Validate() error {
	if err := c.Audio.Validate(); err != nil {
		return fmt.Errorf("audio config: %w", err)
	}
	if err := c.VAD.Validate(); err != nil {
		return fmt.Errorf("vad config: %w", err)
	}
	if err := c.Transcription.Validate(); err != nil {
		return fmt.Errorf("transcription config: %w", err)
	}
	if err := c.HTTP.Validate(); err != nil {
		return fmt.Errorf("http config: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}
	return nil
}

// Validate validates capture parameters.
func (a *AudioConfig) Validate() error {
	if a.SampleRate < 8000 || a.SampleRate > 48000 {
		return fmt.Errorf("sample_rate must be between 8000 and 48000 Hz, got %d", a.SampleRate)
	}

	if a.Channels != 1 {
		return fmt.Errorf("channels must be 1 (mono), got %d", a.Channels)
	}

	if a.FramesPerBuffer < 64 || a.FramesPerBuffer > 8192 {
		return fmt.Errorf("frames_per_buffer must be between 64 and 8192 samples, got %d", a.FramesPerBuffer)
	}

	return nil
}

// Validate validates the hysteresis parameters.
func (v *VADConfig) Validate() error {
	if v.TriggerThresholdDBFS > 0 {
		return fmt.Errorf("trigger_threshold_dbfs cannot exceed 0 dBFS, got %f", v.TriggerThresholdDBFS)
	}

	if v.TriggerFrames < 1 {
		return fmt.Errorf("trigger_frames must be at least 1, got %d", v.TriggerFrames)
	}

	if v.ReleaseFrames < 0 {
		return fmt.Errorf("release_frames cannot be negative, got %d", v.ReleaseFrames)
	}

	return nil
}

// Validate validates transcription configuration.
func (t *TranscriptionConfig) Validate() error {
	if t.Enabled && t.ModelPath == "" {
		return fmt.Errorf("model_path cannot be empty when transcription is enabled")
	}

	return nil
}

// Validate validates the monitoring server configuration.
func (h *HTTPConfig) Validate() error {
	if h.Enabled {
		if h.Port < 1 || h.Port > 65535 {
			return fmt.Errorf("port must be between 1 and 65535, got %d", h.Port)
		}

		if h.Address == "" {
			return fmt.Errorf("address cannot be empty when the HTTP server is enabled")
		}
	}

	return nil
}

// Validate validates logging configuration.
func (l *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[l.Level] {
		return fmt.Errorf("level must be one of [debug, info, warn, error], got '%s'", l.Level)
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("format must be 'json' or 'text', got '%s'", l.Format)
	}

	return nil
}

// FrameDuration returns the wall-clock duration of one capture frame.
func (a *AudioConfig) FrameDuration() time.Duration {
	if a.SampleRate <= 0 {
		return 0
	}
	return time.Duration(a.FramesPerBuffer) * time.Second / time.Duration(a.SampleRate)
}

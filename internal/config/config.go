// Package config handles tool configuration loading and management.
package config

import "time"

// Config holds all tool settings.
type Config struct {
	Scene       SceneConfig       `yaml:"scene"`
	Documents   DocumentsConfig   `yaml:"documents"`
	Checkpoints CheckpointsConfig `yaml:"checkpoints"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// SceneConfig locates the scene file that holds mesh objects.
type SceneConfig struct {
	Path string `yaml:"path"`
}

// DocumentsConfig controls where and how weight documents are written.
type DocumentsConfig struct {
	Dir    string `yaml:"dir"`    // Default directory for saved documents
	Indent bool   `yaml:"indent"` // Pretty-print JSON
}

// CheckpointsConfig controls automatic checkpoints taken by watch.
type CheckpointsConfig struct {
	Dir      string        `yaml:"dir"`
	Debounce time.Duration `yaml:"debounce"` // Quiet period after a scene write
	Keep     int           `yaml:"keep"`     // Checkpoints kept per object, 0 = all
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Scene: SceneConfig{
			Path: "scene.yaml",
		},
		Documents: DocumentsConfig{
			Dir:    ".",
			Indent: true,
		},
		Checkpoints: CheckpointsConfig{
			Dir:      "checkpoints",
			Debounce: 250 * time.Millisecond,
			Keep:     20,
		},
		Logging: LoggingConfig{
			Level:   "warn",
			LogFile: "",
		},
	}
}

// Package config handles exporter configuration loading and management.
package config

import "github.com/Faultbox/bimobj/pkg/objexport"

// Config holds all bimobj settings.
type Config struct {
	Export  ExportConfig  `yaml:"export"`
	Model   ModelConfig   `yaml:"model"`
	Logging LoggingConfig `yaml:"logging"`
}

// ExportConfig holds OBJ output settings.
type ExportConfig struct {
	Metadata         bool `yaml:"metadata"`          // "# _t" / "# _guid" comments
	TransformNormals bool `yaml:"transform_normals"` // inverse-transpose normals
	SkipMalformed    bool `yaml:"skip_malformed"`    // skip instead of abort
	BufferSize       int  `yaml:"buffer_size"`       // bytes
}

// ModelConfig holds model document settings.
type ModelConfig struct {
	DecodeNames bool `yaml:"decode_names"` // decode STEP escapes in names
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			Metadata:         false,
			TransformNormals: false,
			SkipMalformed:    false,
			BufferSize:       objexport.DefaultBufferSize,
		},
		Model: ModelConfig{
			DecodeNames: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Options converts the export settings into exporter options.
func (c ExportConfig) Options() objexport.Options {
	return objexport.Options{
		Metadata:         c.Metadata,
		TransformNormals: c.TransformNormals,
		SkipMalformed:    c.SkipMalformed,
		BufferSize:       c.BufferSize,
	}
}

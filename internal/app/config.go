package app

import (
	"errors"
	"fmt"
)

// Output formats.
const (
	FormatSVG    = "svg"
	FormatPNG    = "png"
	FormatJSON   = "json"
	FormatText   = "text"
	FormatSchema = "schema"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	InputPath  string // score, .json or .yaml
	SchemaPath string // descriptor file or directory; empty for the embedded one
	LayoutPath string // HCL layout options

	Format   string
	OutPath  string // empty writes to the output writer
	Validate bool
	Scale    float64 // PNG only

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	switch cfg.Format {
	case "":
		cfg.Format = FormatSVG
	case FormatSVG, FormatPNG, FormatJSON, FormatText, FormatSchema:
	default:
		return nil, fmt.Errorf("unknown output format %q", cfg.Format)
	}

	if cfg.InputPath == "" && cfg.Format != FormatSchema {
		return nil, errors.New("InputPath is a required configuration field and cannot be empty")
	}
	if cfg.Scale < 0 {
		return nil, fmt.Errorf("scale must not be negative, got %g", cfg.Scale)
	}
	if cfg.Scale == 0 {
		cfg.Scale = 1
	}

	return &cfg, nil
}

package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/musjego/internal/ctxlog"
	"github.com/specialistvlad/musjego/internal/registry"
	"github.com/specialistvlad/musjego/internal/schema"
	"github.com/specialistvlad/musjego/internal/score"
	"github.com/specialistvlad/musjego/internal/validate"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	errW      io.Writer
	logger    *slog.Logger
	config    *Config
	registry  *registry.Registry
	validator *validate.Validator
	loader    *score.Loader
}

// NewApp is the constructor for the main application. Documents are written
// to outW; logs and validation reports go to errW. The schema descriptor is
// loaded and compiled here, once; a descriptor that fails to load or compile
// is a broken build, not bad input, so NewApp panics.
func NewApp(outW, errW io.Writer, cfg *Config, loader schema.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	var paths []string
	if cfg.SchemaPath != "" {
		paths = append(paths, cfg.SchemaPath)
	}
	desc, err := loader.Load(ctx, paths...)
	if err != nil {
		panic(fmt.Errorf("failed to load schema descriptor: %w", err))
	}

	reg, err := registry.Compile(ctx, desc)
	if err != nil {
		panic(fmt.Errorf("failed to compile schema descriptor: %w", err))
	}
	logger.Debug("Schema registry compiled.", "types", len(reg.Types()))

	v := validate.New(reg)
	return &App{
		outW:      outW,
		errW:      errW,
		logger:    logger,
		config:    cfg,
		registry:  reg,
		validator: v,
		loader:    score.NewLoader(v),
	}
}

// Registry returns the compiled schema registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/specialistvlad/musjego/internal/ctxlog"
	"github.com/specialistvlad/musjego/internal/layout"
	"github.com/specialistvlad/musjego/internal/raster"
	"github.com/specialistvlad/musjego/internal/render"
	"github.com/specialistvlad/musjego/internal/score"
	"github.com/specialistvlad/musjego/internal/svg"
	"github.com/specialistvlad/musjego/internal/typeface"
	"github.com/specialistvlad/musjego/internal/validate"
)

// Run loads the configured score and writes it in the configured format.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "format", a.config.Format)

	var out bytes.Buffer
	if err := a.produce(ctx, &out); err != nil {
		return err
	}
	if err := a.write(out.Bytes()); err != nil {
		return err
	}

	a.logger.Debug("App.Run method finished.", "bytes", out.Len())
	return nil
}

func (a *App) produce(ctx context.Context, w io.Writer) error {
	if a.config.Format == FormatSchema {
		return a.writeSchema(w)
	}

	s, err := a.loadScore(ctx)
	if err != nil {
		return err
	}

	switch a.config.Format {
	case FormatText:
		_, err = fmt.Fprintln(w, s.String())
		return err
	case FormatJSON:
		text, err := s.Stringify("  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, text)
		return err
	}
	return a.draw(ctx, w, s)
}

// loadScore reads the input as YAML when its extension says so and as JSON
// otherwise. Validation failures are reported as a table before returning.
func (a *App) loadScore(ctx context.Context) (*score.Score, error) {
	data, err := os.ReadFile(a.config.InputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read score: %w", err)
	}

	var s *score.Score
	switch strings.ToLower(filepath.Ext(a.config.InputPath)) {
	case ".yaml", ".yml":
		s, err = a.loader.LoadYAML(ctx, data, a.config.Validate)
	default:
		s, err = a.loader.Load(ctx, data, a.config.Validate)
	}

	var sv *validate.SchemaViolationError
	if errors.As(err, &sv) {
		a.report(sv.Errors)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load score %s: %w", a.config.InputPath, err)
	}

	a.logger.Info("Score loaded.", "path", a.config.InputPath, "parts", len(s.Parts()), "validated", a.config.Validate)
	return s, nil
}

// report prints one row per validation failure.
func (a *App) report(errs []validate.ValidationError) {
	table := tablewriter.NewWriter(a.errW)
	table.SetHeader([]string{"Path", "Code", "Message"})
	table.SetAutoWrapText(false)
	for _, e := range errs {
		path := e.Path
		if path == "" {
			path = "(root)"
		}
		table.Append([]string{path, string(e.Code), e.Message})
	}
	table.Render()
}

func (a *App) draw(ctx context.Context, w io.Writer, s *score.Score) error {
	lo := layout.Defaults()
	if a.config.LayoutPath != "" {
		var err error
		if lo, err = layout.LoadFile(ctx, a.config.LayoutPath, lo); err != nil {
			return err
		}
	}

	faces, err := typeface.New()
	if err != nil {
		return err
	}
	defer faces.Close()

	doc := svg.New(lo.Width, lo.Height)
	res, err := render.New(faces).Render(ctx, s, doc, lo)
	if err != nil {
		return fmt.Errorf("failed to render score: %w", err)
	}
	a.logger.Info("Score rendered.", "elements", len(res.Placements), "defs", len(doc.Defs))

	if a.config.Format == FormatPNG {
		return raster.WritePNG(ctx, w, doc, faces, a.config.Scale)
	}
	_, err = doc.WriteTo(w)
	return err
}

func (a *App) writeSchema(w io.Writer) error {
	data, err := json.MarshalIndent(a.validator.Document(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON schema: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// write sends the finished document to the output file, or to the output
// writer when no file is configured. Nothing is written when producing fails.
func (a *App) write(data []byte) error {
	if a.config.OutPath == "" {
		_, err := a.outW.Write(data)
		return err
	}
	if err := os.WriteFile(a.config.OutPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", a.config.OutPath, err)
	}
	a.logger.Info("Output written.", "path", a.config.OutPath, "format", a.config.Format)
	return nil
}

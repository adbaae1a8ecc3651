package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/musjego/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("musje", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
musje - render 123 (numbered) music scores.

Usage:
  musje [options] SCORE
  musje --print-schema

Arguments:
  SCORE
    Path to a score in JSON, or YAML when it ends in .yaml or .yml.

Options:
`)
		flagSet.PrintDefaults()
	}

	formatFlag := flagSet.String("format", app.FormatSVG, "Output format. Options: 'svg', 'png', 'json', 'text' or 'schema'.")
	fFlag := flagSet.String("f", "", "Output format (shorthand).")
	outFlag := flagSet.String("o", "", "Output file. Defaults to standard output.")
	schemaFlag := flagSet.String("schema", "", "Schema descriptor file or directory. Defaults to the built-in descriptor.")
	layoutFlag := flagSet.String("layout", "", "HCL file of layout options.")
	validateFlag := flagSet.Bool("validate", true, "Validate the score before constructing it.")
	scaleFlag := flagSet.Float64("scale", 1, "Pixels per user unit for PNG output.")
	printSchemaFlag := flagSet.Bool("print-schema", false, "Print the JSON Schema of scores and exit.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	format := strings.ToLower(*formatFlag)
	if *fFlag != "" {
		format = strings.ToLower(*fFlag)
	}
	if *printSchemaFlag {
		format = app.FormatSchema
	}

	input := flagSet.Arg(0)
	if flagSet.NArg() > 1 {
		return nil, false, usageError("expected one score, got %d", flagSet.NArg())
	}
	if input == "" && format != app.FormatSchema {
		slog.Debug("No score provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	config, err := app.NewConfig(app.Config{
		InputPath:  input,
		SchemaPath: *schemaFlag,
		LayoutPath: *layoutFlag,
		Format:     format,
		OutPath:    *outFlag,
		Validate:   *validateFlag,
		Scale:      *scaleFlag,
		LogFormat:  logFormat,
		LogLevel:   logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

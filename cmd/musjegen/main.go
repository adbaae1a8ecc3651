// Command musjegen compiles a schema descriptor into Go record types.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/musjego/internal/ctxlog"
	"github.com/specialistvlad/musjego/internal/hcl_adapter"
	"github.com/specialistvlad/musjego/internal/registry"
	"github.com/specialistvlad/musjego/internal/schemagen"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run writes the generated source to -out, or to outW when -out is empty.
func run(outW io.Writer, args []string) error {
	flagSet := flag.NewFlagSet("musjegen", flag.ContinueOnError)
	flagSet.SetOutput(outW)
	schemaFlag := flagSet.String("schema", "", "Descriptor file or directory. Defaults to the embedded descriptor.")
	pkgFlag := flagSet.String("package", "score", "Package name of the generated file.")
	outFlag := flagSet.String("out", "", "Output file. Defaults to standard output.")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	ctx := ctxlog.WithLogger(context.Background(), slog.Default())

	var paths []string
	if *schemaFlag != "" {
		paths = append(paths, *schemaFlag)
	}
	desc, err := hcl_adapter.NewLoader().Load(ctx, paths...)
	if err != nil {
		return fmt.Errorf("failed to load schema descriptor: %w", err)
	}
	reg, err := registry.Compile(ctx, desc)
	if err != nil {
		return fmt.Errorf("failed to compile schema descriptor: %w", err)
	}

	src, err := schemagen.Generate(ctx, reg, *pkgFlag)
	if err != nil {
		return err
	}

	if *outFlag == "" {
		_, err = outW.Write(src)
		return err
	}
	if err := os.WriteFile(*outFlag, src, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", *outFlag, err)
	}
	slog.Info("Generated record types.", "out", *outFlag, "types", len(reg.Types()))
	return nil
}

package hcl_adapter

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/musjego/internal/ctxlog"
	"github.com/specialistvlad/musjego/internal/fsutil"
	"github.com/specialistvlad/musjego/internal/schema"
)

// Loader is the HCL-specific implementation of the schema.Loader interface.
type Loader struct{}

var _ schema.Loader = (*Loader)(nil)

// NewLoader creates a new HCL descriptor loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every .hcl file found under paths and merges them into a single
// descriptor. With no paths the embedded default descriptor is used.
func (l *Loader) Load(ctx context.Context, paths ...string) (*schema.Descriptor, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL descriptor loader started.", "path_count", len(paths))

	if len(paths) == 0 {
		logger.Debug("No descriptor paths given, using the embedded descriptor.")
		return l.LoadSource(ctx, schema.DefaultFilename, schema.DefaultSource)
	}

	files, err := fsutil.CollectFiles(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no descriptor files found in %v", paths)
	}
	logger.Debug("Discovered descriptor files.", "count", len(files))

	desc := &schema.Descriptor{}
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read descriptor file %s: %w", file, err)
		}
		part, err := l.LoadSource(ctx, file, src)
		if err != nil {
			return nil, err
		}
		if err := desc.Merge(part); err != nil {
			return nil, fmt.Errorf("failed to merge descriptor file %s: %w", file, err)
		}
	}
	return desc, nil
}

// LoadSource parses a single descriptor held in memory. filename is only
// used in diagnostics.
func (l *Loader) LoadSource(ctx context.Context, filename string, src []byte) (*schema.Descriptor, error) {
	logger := ctxlog.FromContext(ctx).With("file", filename)
	ctx = ctxlog.WithLogger(ctx, logger)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	desc, err := l.translateFile(ctx, &root)
	if err != nil {
		return nil, fmt.Errorf("failed to translate HCL file %s: %w", filename, err)
	}

	logger.Debug("HCL descriptor loaded.",
		"integers", len(desc.Integers),
		"objects", len(desc.Objects),
		"named_objects", len(desc.NamedObjects),
		"arrays", len(desc.Arrays),
	)
	return desc, nil
}

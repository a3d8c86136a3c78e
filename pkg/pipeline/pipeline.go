// Package pipeline provides the visualization pipeline behind every kaoto
// entry point.
//
// This package implements the complete load → build → render pipeline that
// the CLI commands and the HTTP server share, plus the mapping session used
// for link extraction. By centralizing this logic, every entry point caches,
// logs and reports metrics the same way.
//
// # Architecture
//
// The route pipeline consists of three stages:
//
//  1. Load: Read a route file (or inline YAML) and pick one entity
//  2. Build: Convert the entity into a visualization graph (pkg/mapper)
//  3. Render: Produce DOT, SVG, PNG, PDF or JSON output (pkg/render)
//
// Build and Render results are cached by content hash. The mapping session
// ([Runner.OpenMapping]) loads documents and a mapping tree, lays them out
// in a [links.TreeView] and resolves links on every [MappingView.Refresh].
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  "routes.yaml",
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	defs, def, err := runner.Load(ctx, opts)
//	g, err := runner.Build(ctx, def, opts)
//	artifacts, err := runner.Render(ctx, g, opts)
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Ortofta/kaoto/pkg/cache"
	kerrors "github.com/Ortofta/kaoto/pkg/errors"
	"github.com/Ortofta/kaoto/pkg/icons"
	"github.com/Ortofta/kaoto/pkg/render/nodelink"
	"github.com/Ortofta/kaoto/pkg/route"
	"github.com/Ortofta/kaoto/pkg/viz"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// DefaultScale is the PNG scale factor.
const DefaultScale = 2.0

// DefaultDirection is the default diagram direction.
const DefaultDirection = nodelink.DirectionTB

// Format constants for output formats.
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidDirections is the set of supported diagram directions.
var ValidDirections = map[string]bool{
	nodelink.DirectionTB: true,
	nodelink.DirectionLR: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the route pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Source     string `json:"source,omitempty"`     // Route file path
	Definition string `json:"definition,omitempty"` // Inline YAML, used instead of Source
	Entity     string `json:"entity,omitempty"`     // Entity id or kind; first entity when empty
	Refresh    bool   `json:"refresh,omitempty"`    // Bypass the graph cache

	// Build options
	Root string `json:"root,omitempty"` // Root path; the entity kind when empty

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Direction string   `json:"direction,omitempty"`
	Detailed  bool     `json:"detailed,omitempty"`
	Scale     float64  `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger    `json:"-"`
	Icons  icons.Resolver `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Definitions are all entities of the loaded file.
	Definitions []route.Definition

	// Definition is the entity the graph was built from.
	Definition route.Definition

	// Graph is the visualization graph. Graphs served from cache carry no
	// step definitions.
	Graph *viz.Graph

	// GraphHash is the content hash of the serialized graph.
	GraphHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Entities   int
	NodeCount  int
	LoadTime   time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GraphHit  bool // Whether the graph came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return kerrors.New(kerrors.ErrCodeInvalidInput,
			"invalid format: %q (must be one of: %s)", format, strings.Join(formatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateDirection checks that a diagram direction is valid.
func ValidateDirection(dir string) error {
	if !ValidDirections[dir] {
		return kerrors.New(kerrors.ErrCodeInvalidInput, "invalid direction: %q (must be one of: TB, LR)", dir)
	}
	return nil
}

func formatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that a route source was given.
func (o *Options) ValidateForLoad() error {
	if o.Source == "" && o.Definition == "" {
		return kerrors.New(kerrors.ErrCodeInvalidInput, "source or definition is required")
	}
	if o.Root != "" {
		if err := kerrors.ValidateNodePath(o.Root); err != nil {
			return err
		}
	}
	o.setLogger()
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Direction == "" {
		o.Direction = DefaultDirection
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateDirection(o.Direction)
}

// GraphKeyOpts returns cache key options for graph building.
func (o *Options) GraphKeyOpts() cache.GraphKeyOpts {
	return cache.GraphKeyOpts{Root: o.Root, Entity: o.Entity}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format, Direction: o.Direction, Detailed: o.Detailed}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

// NodelinkOptions returns the DOT generation options.
func (o *Options) NodelinkOptions() nodelink.Options {
	return nodelink.Options{Direction: o.Direction, Detailed: o.Detailed}
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

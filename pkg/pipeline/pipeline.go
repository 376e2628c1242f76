// Package pipeline provides the core conversion pipeline for gitchart.
//
// This package implements the complete parse → render pipeline that can be
// used by CLI, watch mode, and the preview server. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Parse: Replay the gitGraph directives into a laid-out model. Parsing
//     and layout are a single pass; positions exist as soon as the model does.
//  2. Render: Generate output in various formats (draw.io XML, DOT, SVG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Formats: []string{pipeline.FormatDrawio},
//	}
//	result, err := runner.Convert(ctx, src, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	xml := result.Artifacts[pipeline.FormatDrawio]
//
// Run individual stages:
//
//	// Parse only
//	m := runner.ParseSource(src, opts)
//
//	// Render an existing model
//	artifacts, err := runner.Render(ctx, m, opts)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gitchart/gitchart/pkg/config"
	"github.com/gitchart/gitchart/pkg/errors"
	"github.com/gitchart/gitchart/pkg/gitgraph"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, Watch, and Server
// =============================================================================

// Format constants for output formats.
const (
	FormatDrawio = "drawio"
	FormatDOT    = "dot"
	FormatSVG    = "svg"
	FormatJSON   = "json"
)

// DefaultFormat is the canonical output format.
const DefaultFormat = FormatDrawio

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDrawio: true,
	FormatDOT:    true,
	FormatSVG:    true,
	FormatJSON:   true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the conversion pipeline.
// This struct supports JSON serialization for tooling integration.
type Options struct {
	// Render options
	Formats     []string `json:"formats,omitempty"`
	DiagramName string   `json:"diagram_name,omitempty"` // draw.io tab name
	Labels      bool     `json:"labels,omitempty"`       // commit labels in DOT/SVG previews

	// Runtime options (not serialized)
	Config *config.Config `json:"-"` // layout and theme settings; nil means defaults
	Logger *log.Logger    `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Model is the parsed, laid-out commit graph.
	Model *gitgraph.Model

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	EdgeCount   int
	BranchCount int
	ParseTime   time.Duration
	RenderTime  time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
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

// FormatNames returns the supported formats in stable order for messages
// and completion.
func FormatNames() []string {
	return []string{FormatDrawio, FormatDOT, FormatSVG, FormatJSON}
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full
// pipeline. This method is idempotent - calling it multiple times has the
// same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetDefaults fills unset fields with their defaults.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Config == nil {
		cfg := config.Default()
		o.Config = &cfg
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gitchart/gitchart/pkg/gitgraph"
	"github.com/gitchart/gitchart/pkg/observability"
)

// Runner encapsulates pipeline execution.
//
// The Runner is stateless except for the logger - it doesn't store pipeline
// results. Multiple goroutines can safely use the same Runner with different
// options, which is what watch mode and the preview server do.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, the default logger is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Convert runs the complete parse → render pipeline.
func (r *Runner) Convert(ctx context.Context, src string, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Parse + layout, one pass.
	observability.Pipeline().OnParseStart(ctx, strings.Count(src, "\n")+1)
	parseStart := time.Now()
	m := r.ParseSource(src, opts)
	result.Model = m
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.NodeCount = len(m.Nodes)
	result.Stats.EdgeCount = len(m.Edges)
	result.Stats.BranchCount = len(m.Branches)
	observability.Pipeline().OnParseComplete(ctx, result.Stats.NodeCount, result.Stats.BranchCount, result.Stats.ParseTime)

	opts.Logger.Info("parsed directives",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"branches", result.Stats.BranchCount,
		"duration", result.Stats.ParseTime)

	// Stage 2: Render.
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, m, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ParseSource replays the directive source into a laid-out model. It never
// fails: unrecognized lines and dangling references degrade silently.
func (r *Runner) ParseSource(src string, opts Options) *gitgraph.Model {
	opts.SetDefaults()
	return gitgraph.Parse(src, opts.Config.ParseOptions()...)
}

// Render generates artifacts for every requested format from an existing
// model. The context cancels rendering between formats.
func (r *Runner) Render(ctx context.Context, m *gitgraph.Model, opts Options) (map[string][]byte, error) {
	opts.SetDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := renderFormat(m, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitchart/gitchart/pkg/pipeline"
)

// convertOpts holds the command-line flags for the convert command.
type convertOpts struct {
	output     string // output file path, "-" for stdout, or base path for multiple formats
	formats    []string
	configPath string // optional TOML config with layout/theme overrides
	name       string // diagram name embedded in the draw.io document
	labels     bool   // commit labels in DOT/SVG previews
}

// convertCommand creates the convert command, the one-shot path from a
// gitGraph file to rendered outputs.
func (c *CLI) convertCommand() *cobra.Command {
	var formatsStr string
	opts := convertOpts{labels: true}

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert a gitGraph file into a draw.io document",
		Long: `Convert a gitGraph file into a draw.io document.

Reads Mermaid gitGraph directives (commit, branch, checkout, merge) from the
input file, or from stdin when the file is "-", and writes the requested
output formats. The default output path derives from the input file name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runConvert(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, \"-\" for stdout, or base path for multiple formats")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): drawio (default), dot, svg, json (comma-separated)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "TOML config file with layout and palette overrides")
	cmd.Flags().StringVar(&opts.name, "name", "", "diagram name embedded in the draw.io document")
	cmd.Flags().BoolVar(&opts.labels, "labels", opts.labels, "render commit labels in DOT/SVG previews")

	return cmd
}

// runConvert reads the source, runs the pipeline, and writes artifacts.
func (c *CLI) runConvert(ctx context.Context, input string, opts convertOpts) error {
	src, err := readInput(input)
	if err != nil {
		return err
	}
	// Piped input has no file name to derive an output path from.
	if input == "-" && opts.output == "" {
		opts.output = stdoutPath
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	pipeOpts := pipeline.Options{
		Formats:     opts.formats,
		DiagramName: opts.name,
		Labels:      opts.labels,
		Config:      cfg,
		Logger:      c.Logger,
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Converting %s...", input))
	spinner.Start()

	result, err := c.newRunner().Convert(ctx, src, pipeOpts)
	if err != nil {
		spinner.StopWithError("Conversion failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	// Stdout output gets only the artifact bytes, no decoration.
	if opts.output == stdoutPath {
		return writeArtifacts(result.Artifacts, opts.formats, opts.output, input)
	}

	printSuccess("Converted %s", input)
	if err := writeArtifacts(result.Artifacts, opts.formats, opts.output, input); err != nil {
		return err
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.Stats.BranchCount)
	return nil
}

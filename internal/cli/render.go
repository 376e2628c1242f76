package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/gitchart/gitchart/pkg/gitgraph"
	pkgio "github.com/gitchart/gitchart/pkg/io"
	"github.com/gitchart/gitchart/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string
	formats    []string
	configPath string
	name       string
	labels     bool
}

// renderCommand creates the render command, the second half of the split
// parse/render flow: model JSON in, artifacts out.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{labels: true}

	cmd := &cobra.Command{
		Use:   "render [model.json]",
		Short: "Render a parsed model into output formats",
		Long: `Render a parsed model into output formats.

Takes a model JSON produced by 'gitchart parse' (or "-" for stdin) and emits
the requested formats without reparsing the gitGraph source.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, \"-\" for stdout, or base path for multiple formats")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): drawio (default), dot, svg, json (comma-separated)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "TOML config file with layout and palette overrides")
	cmd.Flags().StringVar(&opts.name, "name", "", "diagram name embedded in the draw.io document")
	cmd.Flags().BoolVar(&opts.labels, "labels", opts.labels, "render commit labels in DOT/SVG previews")

	return cmd
}

// runRender loads the model and renders it to the requested formats.
func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	m, err := loadModel(input)
	if err != nil {
		return err
	}
	c.Logger.Infof("Loaded model: %d commits, %d edges", len(m.Nodes), len(m.Edges))

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
	if err := pipeOpts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if input == "-" && opts.output == "" {
		opts.output = stdoutPath
	}

	artifacts, err := c.newRunner().Render(ctx, m, pipeOpts)
	if err != nil {
		return err
	}

	// Stdout output gets only the artifact bytes, no decoration.
	if opts.output == stdoutPath {
		return writeArtifacts(artifacts, opts.formats, opts.output, input)
	}

	printSuccess("Rendered %s", input)
	if err := writeArtifacts(artifacts, opts.formats, opts.output, input); err != nil {
		return err
	}
	printStats(len(m.Nodes), len(m.Edges), len(m.Branches))
	return nil
}

// loadModel reads a model JSON from a file or stdin.
func loadModel(path string) (*gitgraph.Model, error) {
	if path == "-" {
		return pkgio.ReadJSON(os.Stdin)
	}
	return pkgio.ImportJSON(path)
}

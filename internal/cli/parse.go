package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	pkgio "github.com/gitchart/gitchart/pkg/io"
	"github.com/gitchart/gitchart/pkg/pipeline"
)

// parseCommand creates the parse command, the first half of the split
// parse/render flow.
func (c *CLI) parseCommand() *cobra.Command {
	var (
		output     string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a gitGraph file into a model JSON",
		Long: `Parse a gitGraph file into a model JSON.

The emitted model carries the positioned commits, edges and branch lanes and
can be rendered later with 'gitchart render'. Output goes to stdout unless
-o is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParse(args[0], output, configPath)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file with layout and palette overrides")

	return cmd
}

// runParse parses the input and writes the model JSON.
func (c *CLI) runParse(input, output, configPath string) error {
	src, err := readInput(input)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	m := c.newRunner().ParseSource(src, pipeline.Options{Config: cfg, Logger: c.Logger})
	prog.done(fmt.Sprintf("Parsed %d commits on %d branches", len(m.Nodes), len(m.Branches)))

	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := pkgio.WriteJSON(m, out); err != nil {
		return err
	}
	if output != "" && output != stdoutPath {
		printSuccess("Wrote model")
		printFile(output, "")
		printNewline()
		printNextStep("Render", appName+" render "+output)
	}
	return nil
}

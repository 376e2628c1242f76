package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/gitchart/gitchart/internal/server"
	"github.com/gitchart/gitchart/pkg/pipeline"
)

// defaultListenAddr is where the preview server binds unless overridden.
const defaultListenAddr = "localhost:8017"

// serveCommand creates the serve command for the live preview server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		listen     string
		configPath string
		name       string
		debounce   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve a live-reloading preview of a gitGraph file",
		Long: `Serve a live-reloading preview of a gitGraph file.

The server watches the file, reconverts it on every change, and pushes the
result to connected browsers. The latest draw.io document is always
available at /diagram.xml.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], listen, configPath, name, debounce)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", defaultListenAddr, "listen address")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file with layout and palette overrides")
	cmd.Flags().StringVar(&name, "name", "", "diagram name embedded in the draw.io document")
	cmd.Flags().DurationVar(&debounce, "debounce", server.DefaultDebounce, "delay before reconverting after a file change")

	return cmd
}

// runServe builds and runs the preview server until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, input, listen, configPath, name string, debounce time.Duration) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Options{
		Addr:  listen,
		Input: input,
		Pipeline: pipeline.Options{
			DiagramName: name,
			Labels:      true,
			Config:      cfg,
		},
		Debounce: debounce,
		Logger:   c.Logger,
	})
	if err != nil {
		return err
	}

	printSuccess("Watching %s", input)
	printNextStep("Preview", "http://"+listen)
	printNewline()

	return srv.Run(ctx)
}

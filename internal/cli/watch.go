package cli

import (
	"context"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/gitchart/gitchart/internal/server"
	"github.com/gitchart/gitchart/pkg/errors"
	"github.com/gitchart/gitchart/pkg/pipeline"
)

// watchOpts holds the command-line flags for the watch command.
type watchOpts struct {
	convertOpts
	debounce time.Duration
	noTUI    bool
}

// watchCommand creates the watch command: convert once, then reconvert on
// every change to the input file.
func (c *CLI) watchCommand() *cobra.Command {
	var formatsStr string
	opts := watchOpts{convertOpts: convertOpts{labels: true}}

	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Reconvert a gitGraph file whenever it changes",
		Long: `Reconvert a gitGraph file whenever it changes.

Runs the same conversion as 'gitchart convert' in a loop driven by file
system events. On interactive terminals a status view shows the build
history; use --no-tui for plain log lines.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runWatch(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file or base path for multiple formats")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): drawio (default), dot, svg, json (comma-separated)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "TOML config file with layout and palette overrides")
	cmd.Flags().StringVar(&opts.name, "name", "", "diagram name embedded in the draw.io document")
	cmd.Flags().BoolVar(&opts.labels, "labels", opts.labels, "render commit labels in DOT/SVG previews")
	cmd.Flags().DurationVar(&opts.debounce, "debounce", server.DefaultDebounce, "delay before reconverting after a file change")
	cmd.Flags().BoolVar(&opts.noTUI, "no-tui", false, "plain log lines instead of the status view")

	return cmd
}

// runWatch drives the rebuild loop until ctx is cancelled.
func (c *CLI) runWatch(ctx context.Context, input string, opts watchOpts) error {
	if input == "-" {
		return errors.New(errors.ErrCodeInvalidInput, "watch requires a file, not stdin")
	}
	if opts.output == stdoutPath {
		return errors.New(errors.ErrCodeInvalidInput, "watch writes files, not stdout")
	}
	if opts.debounce <= 0 {
		opts.debounce = server.DefaultDebounce
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

	if opts.noTUI || !isatty.IsTerminal(os.Stdout.Fd()) {
		return c.watchPlain(ctx, input, opts, pipeOpts)
	}
	return c.watchTUI(ctx, input, opts, pipeOpts)
}

// buildOnce runs one conversion and writes the artifacts.
func (c *CLI) buildOnce(ctx context.Context, input string, opts watchOpts, pipeOpts pipeline.Options) buildMsg {
	start := time.Now()

	src, err := readInput(input)
	if err != nil {
		return buildMsg{err: err, at: start}
	}
	result, err := c.newRunner().Convert(ctx, src, pipeOpts)
	if err != nil {
		return buildMsg{err: err, at: start}
	}
	files, err := saveArtifacts(result.Artifacts, opts.formats, opts.output, input)
	if err != nil {
		return buildMsg{err: err, at: start}
	}

	return buildMsg{
		stats:    result.Stats,
		files:    files,
		at:       start,
		duration: time.Since(start),
	}
}

// watchPlain rebuilds on change and reports through the logger. Build
// failures are logged and the loop keeps running.
func (c *CLI) watchPlain(ctx context.Context, input string, opts watchOpts, pipeOpts pipeline.Options) error {
	events, err := watchEvents(ctx, input, opts.debounce)
	if err != nil {
		return err
	}

	c.logBuild(c.buildOnce(ctx, input, opts, pipeOpts))
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-events:
			c.logBuild(c.buildOnce(ctx, input, opts, pipeOpts))
		}
	}
}

func (c *CLI) logBuild(b buildMsg) {
	if b.err != nil {
		c.Logger.Error("build failed", "err", errors.UserMessage(b.err))
		return
	}
	c.Logger.Info("built",
		"commits", b.stats.NodeCount,
		"branches", b.stats.BranchCount,
		"duration", b.duration.Round(time.Millisecond))
	for _, f := range b.files {
		c.Logger.Debug("wrote", "path", f.Path, "bytes", f.Size)
	}
}

// watchTUI rebuilds on change behind a bubbletea status view. Quitting the
// view (q, ctrl+c) stops the loop.
func (c *CLI) watchTUI(ctx context.Context, input string, opts watchOpts, pipeOpts pipeline.Options) error {
	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newWatchModel(input))

	events, err := watchEvents(wctx, input, opts.debounce)
	if err != nil {
		return err
	}

	go func() {
		build := func() {
			p.Send(buildStartMsg{})
			p.Send(c.buildOnce(wctx, input, opts, pipeOpts))
		}
		build()
		for {
			select {
			case <-wctx.Done():
				p.Quit()
				return
			case <-events:
				build()
			}
		}
	}()

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// watchEvents watches input's parent directory and delivers one signal per
// debounced burst of events touching the file. The directory is watched
// rather than the file so atomic-rename saves keep producing events.
func watchEvents(ctx context.Context, input string, debounce time.Duration) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(input)); err != nil {
		watcher.Close()
		return nil, err
	}

	events := make(chan struct{}, 1)
	base := filepath.Base(input)

	go func() {
		defer watcher.Close()
		var timer *time.Timer
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != base || event.Op == fsnotify.Chmod {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(debounce, func() {
					select {
					case events <- struct{}{}:
					default:
					}
				})
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return events, nil
}

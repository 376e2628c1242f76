// Package config loads the optional TOML file that controls diagram layout
// and theming. Every field has a default, so the zero-flag path never reads
// the filesystem; an explicit --config path that cannot be read or parsed is
// fatal.
package config

import (
	"os"
	"regexp"

	"github.com/BurntSushi/toml"

	"github.com/gitchart/gitchart/pkg/errors"
	"github.com/gitchart/gitchart/pkg/gitgraph"
)

// DefaultNodeSize is the rendered diameter of a commit node.
const DefaultNodeSize = 40.0

// Layout controls the coordinate grid positions are computed on.
type Layout struct {
	XSpacing float64 `toml:"x_spacing"` // horizontal step per commit
	YSpacing float64 `toml:"y_spacing"` // vertical pitch per lane
	NodeSize float64 `toml:"node_size"` // node diameter in the output document
}

// Theme controls the colors applied to branches and their commits.
type Theme struct {
	Palette []string `toml:"palette"` // branch color cycle, "#rrggbb"
}

// Config is the full settings tree. It only feeds constants into the parser
// options and the emitters' styles; it cannot change parse semantics.
type Config struct {
	Layout Layout `toml:"layout"`
	Theme  Theme  `toml:"theme"`
}

// Default returns the built-in settings used when no config file is given.
func Default() Config {
	return Config{
		Layout: Layout{
			XSpacing: gitgraph.DefaultXSpacing,
			YSpacing: gitgraph.DefaultYSpacing,
			NodeSize: DefaultNodeSize,
		},
		Theme: Theme{
			Palette: append([]string(nil), gitgraph.DefaultPalette...),
		},
	}
}

// Load reads a TOML file over the defaults, so a partial file overrides only
// the keys it names. The returned Config is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "failed to read config file: %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "failed to parse config file: %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if c.Layout.XSpacing <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout.x_spacing must be positive, got %v", c.Layout.XSpacing)
	}
	if c.Layout.YSpacing <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout.y_spacing must be positive, got %v", c.Layout.YSpacing)
	}
	if c.Layout.NodeSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout.node_size must be positive, got %v", c.Layout.NodeSize)
	}
	if len(c.Theme.Palette) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "theme.palette cannot be empty")
	}
	for i, color := range c.Theme.Palette {
		if !hexColorRegex.MatchString(color) {
			return errors.New(errors.ErrCodeInvalidConfig, "theme.palette[%d] = %q is not a #rrggbb color", i, color)
		}
	}
	return nil
}

// ParseOptions translates the settings into parser options.
func (c Config) ParseOptions() []gitgraph.Option {
	return []gitgraph.Option{
		gitgraph.WithSpacing(c.Layout.XSpacing, c.Layout.YSpacing),
		gitgraph.WithPalette(c.Theme.Palette),
	}
}

package pipeline

import (
	"bytes"

	"github.com/gitchart/gitchart/pkg/errors"
	"github.com/gitchart/gitchart/pkg/gitgraph"
	"github.com/gitchart/gitchart/pkg/io"
	"github.com/gitchart/gitchart/pkg/render/dot"
	"github.com/gitchart/gitchart/pkg/render/drawio"
)

// renderFormat produces one artifact. The format must already be validated.
func renderFormat(m *gitgraph.Model, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatDrawio:
		return drawio.Render(m,
			drawio.WithNodeSize(opts.Config.Layout.NodeSize),
			drawio.WithName(opts.DiagramName),
		)

	case FormatDOT:
		return []byte(dot.ToDOT(m, dot.Options{Labels: opts.Labels})), nil

	case FormatSVG:
		src := dot.ToDOT(m, dot.Options{Labels: opts.Labels})
		svg, err := dot.RenderSVG(src)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "graphviz rendering failed")
		}
		return svg, nil

	case FormatJSON:
		var buf bytes.Buffer
		if err := io.WriteJSON(m, &buf); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "model serialization failed")
		}
		return buf.Bytes(), nil

	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
	}
}

package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/gitchart/gitchart/pkg/errors"
	"github.com/gitchart/gitchart/pkg/pipeline"
)

// buildStartMsg signals that a rebuild has started.
type buildStartMsg struct{}

// buildMsg carries the outcome of one conversion.
type buildMsg struct {
	stats    pipeline.Stats
	files    []artifactFile
	err      error
	at       time.Time
	duration time.Duration
}

// watchModel is the bubbletea model for the watch status view.
type watchModel struct {
	input    string
	builds   int
	failures int
	last     buildMsg
	building bool
	started  bool
}

func newWatchModel(input string) watchModel {
	return watchModel{input: input}
}

func (m watchModel) Init() tea.Cmd {
	return nil
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case buildStartMsg:
		m.building = true
	case buildMsg:
		m.building = false
		m.started = true
		m.last = msg
		if msg.err != nil {
			m.failures++
		} else {
			m.builds++
		}
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(appName + " watch"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(m.input))
	b.WriteString("\n\n")

	switch {
	case m.building:
		b.WriteString(StyleDim.Render("  building..."))
	case !m.started:
		b.WriteString(StyleDim.Render("  waiting for first build"))
	case m.last.err != nil:
		b.WriteString(styleIconError.Render(iconError))
		b.WriteString(" " + StyleWarning.Render(errors.UserMessage(m.last.err)))
	default:
		b.WriteString(styleIconSuccess.Render(iconSuccess))
		b.WriteString(fmt.Sprintf(" build #%d", m.builds))
		b.WriteString(StyleDim.Render(fmt.Sprintf(" · %d commits · %d branches · %s · %s",
			m.last.stats.NodeCount, m.last.stats.BranchCount,
			m.last.duration.Round(time.Millisecond),
			m.last.at.Format("15:04:05"))))
		for _, f := range m.last.files {
			b.WriteString("\n  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(f.Path) +
				" " + StyleDim.Render("("+humanize.Bytes(uint64(f.Size))+")"))
		}
	}

	b.WriteString("\n\n")
	if m.failures > 0 {
		b.WriteString(StyleDim.Render(fmt.Sprintf("%d failed · ", m.failures)))
	}
	b.WriteString(StyleDim.Render("q quit"))
	b.WriteString("\n")
	return b.String()
}

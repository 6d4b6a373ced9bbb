package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/gridsolve/pkg/errors"
	"github.com/matzehuels/gridsolve/pkg/grid"
	"github.com/matzehuels/gridsolve/pkg/layout"
)

const (
	// sizeStep is how far one key press resizes the figure, in inches.
	sizeStep = 0.5
	// minFigSize keeps the figure from collapsing below the margins.
	minFigSize = 1.0
)

var (
	cellStyle     = lipgloss.NewStyle().Foreground(colorGray)
	cellDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
	cellSelStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	exploreErrSty = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// exploreModel - Interactive layout browser
// =============================================================================

// exploreModel is the bubbletea model behind the explore command. It shows
// the arrangement and its computed rectangles, lets the user step through
// subplots and resizes the figure, recomputing on every change.
type exploreModel struct {
	engine *layout.Engine
	report *report

	array   grid.Array
	params  layout.Params
	initial layout.Params

	pos    layout.Positions
	ids    []int
	cursor int
	err    error
}

// newExploreModel computes the initial layout. The engine must report to
// rep through its layout hooks.
func newExploreModel(e *layout.Engine, rep *report, a grid.Array, p layout.Params) exploreModel {
	m := exploreModel{engine: e, report: rep, array: a, params: p, initial: p}
	m.recompute()
	return m
}

// recompute keeps the last good positions when the new size is invalid.
func (m *exploreModel) recompute() {
	m.report.reset()
	pos, err := m.engine.Compute(m.array, m.params)
	m.err = err
	if err != nil {
		return
	}
	m.pos = pos
	m.ids = pos.IDs()
	if m.cursor >= len(m.ids) {
		m.cursor = 0
	}
}

func (m *exploreModel) resize(dw, dh float64) {
	w, h := m.params.FigWidth+dw, m.params.FigHeight+dh
	if w < minFigSize || h < minFigSize {
		return
	}
	m.params.FigWidth, m.params.FigHeight = w, h
	m.recompute()
}

// Selected returns the subplot under the cursor, or 0 when there is none.
func (m exploreModel) Selected() int {
	if len(m.ids) == 0 {
		return 0
	}
	return m.ids[m.cursor]
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.ids)-1 {
			m.cursor++
		}
	case "+", "=", "right", "l":
		m.resize(sizeStep, 0)
	case "-", "left", "h":
		m.resize(-sizeStep, 0)
	case "]":
		m.resize(0, sizeStep)
	case "[":
		m.resize(0, -sizeStep)
	case "r":
		m.params = m.initial
		m.recompute()
	}
	return m, nil
}

func (m exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s explore", appName)))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %.1f x %.1f in", m.params.FigWidth, m.params.FigHeight)))
	b.WriteString("\n\n")

	b.WriteString(m.arrayView())
	b.WriteString("\n\n")

	if len(m.pos) > 0 {
		b.WriteString(positionsTable(m.pos, m.Selected()).Render())
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(exploreErrSty.Render(errors.UserMessage(m.err)))
		b.WriteString("\n")
	} else {
		b.WriteString(summaryLine(m.report))
		b.WriteString("\n")
	}
	if m.report.fallback != nil {
		b.WriteString(StyleWarning.Render("  " + m.report.fallback.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ subplot  +/- width  [/] height  r reset  q quit"))
	return b.String()
}

// arrayView draws the arrangement with the selected subplot's cells
// highlighted.
func (m exploreModel) arrayView() string {
	sel := m.Selected()
	width := 1
	for _, id := range m.array.IDs() {
		width = max(width, len(fmt.Sprint(id)))
	}

	lines := make([]string, len(m.array))
	for r, row := range m.array {
		cells := make([]string, len(row))
		for c, v := range row {
			s := fmt.Sprintf("%*d", width, v)
			switch {
			case v == 0:
				cells[c] = cellDimStyle.Render(fmt.Sprintf("%*s", width, "."))
			case v == sel:
				cells[c] = cellSelStyle.Render(s)
			default:
				cells[c] = cellStyle.Render(s)
			}
		}
		lines[r] = "  " + strings.Join(cells, " ")
	}
	return strings.Join(lines, "\n")
}

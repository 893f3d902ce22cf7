package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/jask/pixed/internal/paint"
	"github.com/jask/pixed/internal/picture"
)

var scrollActions = map[string]bool{actionUp: true, actionDown: true, actionLeft: true, actionRight: true}

func (m *Model) View() string {
	if m.quitting {
		return "Goodbye\n"
	}
	header := m.renderHeader()
	status := m.renderStatusBar()
	footer := m.renderFooter()
	body := m.renderGrid()
	if m.prompt != nil {
		body = lipgloss.Place(max(1, m.width), m.visibleRows(), lipgloss.Center, lipgloss.Center, m.prompt.View())
	}
	body = fitHeight(body, m.visibleRows())
	view := strings.Join([]string{header, status, body, footer}, "\n")
	view = fitHeight(view, max(1, m.height))
	return appStyle.MaxWidth(max(1, m.width)).Render(view)
}

func (m *Model) renderHeader() string {
	pic := m.ctrl.Picture()
	tools := make([]string, 0, 2)
	for _, t := range []paint.Tool{paint.Pencil, paint.Eraser} {
		if t == m.ctrl.Tool() {
			tools = append(tools, activeToolStyle.Render(t.String()))
		} else {
			tools = append(tools, inactiveToolStyle.Render(t.String()))
		}
	}
	left := headerAppStyle.Render(" pixed ")
	info := fmt.Sprintf(" %s %dx%d ", pic.Name(), pic.Width(), pic.Height())
	line := left + strings.Join(tools, "") + " " + swatch(m.ctrl.Color()) + info
	return renderBar(headerBarStyle, max(1, m.width), line, colorMantle)
}

// swatch renders the pencil color as a label readable on its own background.
func swatch(c picture.Color) string {
	label := " " + string(c) + " "
	hex := cssColor(c)
	fg := lipgloss.Color("#ffffff")
	if cc, err := colorful.Hex(hex); err == nil {
		if l, _, _ := cc.Lab(); l > 0.6 {
			fg = lipgloss.Color("#000000")
		}
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Foreground(fg).Render(label)
}

func (m *Model) renderStatusBar() string {
	msg := strings.TrimSpace(m.status)
	if msg == "" {
		msg = "Ready"
	}
	if m.path != "" {
		msg += "  [" + m.path + "]"
	}
	if m.statusErr {
		return renderBar(statusErrBarStyle, max(1, m.width), msg, colorSurface0)
	}
	return renderBar(statusBarStyle, max(1, m.width), msg, colorSurface0)
}

func (m *Model) renderFooter() string {
	bg := colorMantle
	keyStyle := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Background(bg)
	descStyle := lipgloss.NewStyle().Foreground(colorMuted).Background(bg)
	space := lipgloss.NewStyle().Background(bg).Render(" ")
	sep := lipgloss.NewStyle().Background(bg).Render("  ")

	bindings := m.keys.BindingsForScope(m.scope())
	parts := make([]string, 0, len(bindings))
	seen := make(map[string]bool, len(bindings))
	for _, b := range bindings {
		if len(b.Keys) == 0 || seen[b.Action] {
			continue
		}
		if scrollActions[b.Action] && !m.showHelp {
			continue
		}
		seen[b.Action] = true
		kb := key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Description))
		h := kb.Help()
		parts = append(parts, keyStyle.Render(h.Key)+space+descStyle.Render(h.Desc))
	}
	return renderBar(footerStyle, max(1, m.width), strings.Join(parts, sep), bg)
}

// renderGrid draws the visible window of the picture, two columns per cell.
func (m *Model) renderGrid() string {
	pic := m.ctrl.Picture()
	rows := min(m.visibleRows(), pic.Height()-m.offRow)
	cols := min(m.visibleCols(), pic.Width()-m.offCol)
	if rows <= 0 || cols <= 0 {
		return ""
	}
	styles := make(map[picture.Color]lipgloss.Style)
	blank := strings.Repeat(" ", cellWidth)
	var b strings.Builder
	for r := 0; r < rows; r++ {
		row := r + m.offRow
		for c := 0; c < cols; c++ {
			col := c + m.offCol
			color := pic.Color(row, col)
			if color == picture.Transparent {
				b.WriteString(checkStyles[(row+col)%2].Render(blank))
				continue
			}
			st, ok := styles[color]
			if !ok {
				st = lipgloss.NewStyle().Background(lipgloss.Color(cssColor(color)))
				styles[color] = st
			}
			b.WriteString(st.Render(blank))
		}
		if r < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func cssColor(c picture.Color) string {
	return "#" + strings.TrimPrefix(string(c), "#")
}

func renderBar(style lipgloss.Style, width int, text string, bg lipgloss.TerminalColor) string {
	line := strings.ReplaceAll(text, "\n", " ")
	line = ansi.Truncate(line, width, "")
	lineW := ansi.StringWidth(line)
	if lineW < width {
		line += strings.Repeat(" ", width-lineW)
	}
	return style.
		Background(bg).
		Width(width).
		MaxWidth(width).
		Render(line)
}

func fitHeight(s string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type promptKind string

const (
	promptColor  promptKind = "color"
	promptResize promptKind = "resize"
	promptRename promptKind = "rename"
	promptOpen   promptKind = "open"
)

type prompt struct {
	kind  promptKind
	title string
	input textinput.Model
}

func newPrompt(kind promptKind, title, value, placeholder string) *prompt {
	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = placeholder
	in.CharLimit = 256
	in.Width = 40
	in.SetValue(value)
	in.CursorEnd()
	in.Focus()
	return &prompt{kind: kind, title: title, input: in}
}

func (p *prompt) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (p *prompt) Value() string {
	return strings.TrimSpace(p.input.Value())
}

func (p *prompt) View() string {
	return promptStyle.Render(promptTitleStyle.Render(p.title) + "\n" + p.input.View())
}

// parseSize accepts "W", "WxH", "W H" or "W,H".
func parseSize(s string) (int, int, error) {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == 'x' || r == ',' || r == ' '
	})
	if len(fields) == 0 || len(fields) > 2 {
		return 0, 0, fmt.Errorf("size %q: want WIDTHxHEIGHT", s)
	}
	w, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: bad width", s)
	}
	h := w
	if len(fields) == 2 {
		if h, err = strconv.Atoi(fields[1]); err != nil {
			return 0, 0, fmt.Errorf("size %q: bad height", s)
		}
	}
	return w, h, nil
}

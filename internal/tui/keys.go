package tui

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	scopeCanvas = "canvas"
	scopePrompt = "prompt"
)

const (
	actionPencil   = "pencil"
	actionEraser   = "eraser"
	actionEraseAll = "erase-all"
	actionColor    = "color"
	actionResize   = "resize"
	actionRename   = "rename"
	actionSave     = "save"
	actionOpen     = "open"
	actionPrefs    = "prefs"
	actionUp       = "scroll-up"
	actionDown     = "scroll-down"
	actionLeft     = "scroll-left"
	actionRight    = "scroll-right"
	actionHelp     = "help"
	actionQuit     = "quit"
	actionSubmit   = "submit"
	actionCancel   = "cancel"
)

type KeyBinding struct {
	Keys        []string
	Action      string
	Description string
	Scopes      []string
}

type KeyRegistry struct {
	bindings []KeyBinding
}

func NewKeyRegistry(bindings []KeyBinding) *KeyRegistry {
	return &KeyRegistry{bindings: slices.Clone(bindings)}
}

func DefaultKeyBindings() []KeyBinding {
	return []KeyBinding{
		{Keys: []string{"p"}, Action: actionPencil, Description: "pencil", Scopes: []string{scopeCanvas}},
		{Keys: []string{"e"}, Action: actionEraser, Description: "eraser", Scopes: []string{scopeCanvas}},
		{Keys: []string{"X"}, Action: actionEraseAll, Description: "erase all", Scopes: []string{scopeCanvas}},
		{Keys: []string{"c"}, Action: actionColor, Description: "color", Scopes: []string{scopeCanvas}},
		{Keys: []string{"r"}, Action: actionResize, Description: "resize", Scopes: []string{scopeCanvas}},
		{Keys: []string{"n"}, Action: actionRename, Description: "rename", Scopes: []string{scopeCanvas}},
		{Keys: []string{"s"}, Action: actionSave, Description: "save", Scopes: []string{scopeCanvas}},
		{Keys: []string{"o"}, Action: actionOpen, Description: "open", Scopes: []string{scopeCanvas}},
		{Keys: []string{"ctrl+s"}, Action: actionPrefs, Description: "save prefs", Scopes: []string{scopeCanvas}},
		{Keys: []string{"up", "k"}, Action: actionUp, Description: "scroll", Scopes: []string{scopeCanvas}},
		{Keys: []string{"down", "j"}, Action: actionDown, Description: "scroll", Scopes: []string{scopeCanvas}},
		{Keys: []string{"left", "h"}, Action: actionLeft, Description: "scroll", Scopes: []string{scopeCanvas}},
		{Keys: []string{"right", "l"}, Action: actionRight, Description: "scroll", Scopes: []string{scopeCanvas}},
		{Keys: []string{"?"}, Action: actionHelp, Description: "help", Scopes: []string{scopeCanvas}},
		{Keys: []string{"q", "ctrl+c"}, Action: actionQuit, Description: "quit", Scopes: []string{scopeCanvas}},
		{Keys: []string{"ctrl+c"}, Action: actionQuit, Description: "quit", Scopes: []string{scopePrompt}},
		{Keys: []string{"enter"}, Action: actionSubmit, Description: "ok", Scopes: []string{scopePrompt}},
		{Keys: []string{"esc"}, Action: actionCancel, Description: "cancel", Scopes: []string{scopePrompt}},
	}
}

func (r *KeyRegistry) BindingsForScope(scope string) []KeyBinding {
	out := make([]KeyBinding, 0, len(r.bindings))
	for _, b := range r.bindings {
		if scopeMatch(scope, b.Scopes) {
			out = append(out, b)
		}
	}
	return out
}

// ActionFor returns the action bound to msg in scope, or "".
func (r *KeyRegistry) ActionFor(msg tea.KeyMsg, scope string) string {
	pressed := normalizeKey(msg.String())
	for _, b := range r.bindings {
		if !scopeMatch(scope, b.Scopes) {
			continue
		}
		for _, k := range b.Keys {
			if normalizeKey(k) == pressed {
				return b.Action
			}
		}
	}
	return ""
}

// Single printable keys stay case sensitive so "X" and "x" can differ.
func normalizeKey(k string) string {
	k = strings.TrimSpace(k)
	if len([]rune(k)) == 1 {
		return k
	}
	return strings.ToLower(k)
}

func scopeMatch(scope string, scopes []string) bool {
	if len(scopes) == 0 {
		return true
	}
	for _, s := range scopes {
		if s == "*" || s == scope {
			return true
		}
	}
	return false
}

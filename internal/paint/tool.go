package paint

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/jask/pixed/internal/picture"
)

type Tool string

const (
	Pencil   Tool = "pencil"
	Eraser   Tool = "eraser"
	EraseAll Tool = "erase-all"
)

// DefaultColor is the pencil color of a fresh controller.
const DefaultColor picture.Color = "000000"

var toolNames = map[string]Tool{
	"pencil":    Pencil,
	"eraser":    Eraser,
	"rubber":    Eraser,
	"erase-all": EraseAll,
}

func (t Tool) Valid() bool {
	switch t {
	case Pencil, Eraser, EraseAll:
		return true
	}
	return false
}

func (t Tool) String() string { return string(t) }

// ParseTool maps a tool name to a Tool. "rubber" is accepted for the eraser.
func ParseTool(name string) (Tool, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if t, ok := toolNames[key]; ok {
		return t, nil
	}
	return "", &ConfigurationError{Field: "tool", Value: name, Hint: suggestTool(key)}
}

func suggestTool(name string) string {
	best, bestDist := "", 4
	for candidate := range toolNames {
		if d := levenshtein.ComputeDistance(name, candidate); d < bestDist || (d == bestDist && candidate < best) {
			best, bestDist = candidate, d
		}
	}
	if best == "" {
		return "want pencil, eraser or erase-all"
	}
	return "did you mean " + best + "?"
}

// ParseColor validates a 3 or 6 digit hex color, with or without a leading
// '#'. The value is returned as given, minus surrounding space.
func ParseColor(s string) (picture.Color, error) {
	v := strings.TrimSpace(s)
	digits := strings.TrimPrefix(v, "#")
	if len(digits) != 3 && len(digits) != 6 {
		return "", &ConfigurationError{Field: "color", Value: s, Hint: "want 3 or 6 hex digits"}
	}
	if _, err := colorful.Hex("#" + digits); err != nil {
		return "", &ConfigurationError{Field: "color", Value: s, Hint: "not a hex color"}
	}
	return picture.Color(v), nil
}

package paint

import (
	"errors"
	"fmt"
)

var ErrConfiguration = errors.New("invalid paint configuration")

// ConfigurationError rejects a tool, color or name before any state changes.
type ConfigurationError struct {
	Field string
	Value string
	Hint  string
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("invalid %s %q", e.Field, e.Value)
	if e.Hint != "" {
		msg += ": " + e.Hint
	}
	return msg
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

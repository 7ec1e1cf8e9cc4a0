package typing

import "fmt"

// ConfigError is returned by New when the animator cannot be built from
// the given words and options. Nothing is scheduled when it is returned.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("typing: invalid %s: %s", e.Field, e.Reason)
}

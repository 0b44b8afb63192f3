package epidemic

import "fmt"

// ConfigError reports a configuration value that is outside its valid range
// or could not be parsed. It is only ever returned while setting up a model.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("epidemic: invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// InvariantViolation signals broken bookkeeping inside the model, such as
// counts that no longer sum to the population or an index outside the grid.
// It is raised with panic: it means a bug, not bad input.
type InvariantViolation struct {
	Step   int
	Reason string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("epidemic: invariant violated at step %d: %s", e.Step, e.Reason)
}

package qload

import (
	"fmt"

	"github.com/pkg/errors"
)

// ConfigError reports an unusable parameter, naming which one. Callers
// decide how to present it; only the CLI layer turns it into a usage hint.
type ConfigError struct {
	Param string
	Cause error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: bad %s: %v", e.Param, e.Cause)
}

func configErrorf(param string, format string, args ...interface{}) error {
	return &ConfigError{Param: param, Cause: errors.Errorf(format, args...)}
}

// IsConfigError reports whether err is a parameter-parsing failure.
func IsConfigError(err error) bool {
	_, ok := errors.Cause(err).(*ConfigError)
	return ok
}

// pctSumError reports hotspot class-intervals that are not
// collectively exhaustive over the key space.
type pctSumError struct {
	pctSum float32
	name   string
}

func (e *pctSumError) Error() string {
	return fmt.Sprintf("class-intervals aren't mutually-exclusive and "+
		"collectively-exhaustive on histogram '%s' as they sum up to '%0.2f%%'",
		e.name, e.pctSum)
}

// Check panics on error
func Check(e error) {
	if e != nil {
		panic(e)
	}
}

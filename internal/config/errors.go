package config

import (
	"errors"
	"fmt"
)

// ErrExists is returned by WriteTemplate when the target file is present.
var ErrExists = errors.New("config file already exists")

// ConfigError reports malformed or missing configuration structure.
// Any ConfigError keeps the launcher from starting.
type ConfigError struct {
	Section string // Empty for file-level problems
	Key     string // Empty for section-level problems
	Msg     string
}

func (e *ConfigError) Error() string {
	switch {
	case e.Section == "":
		return e.Msg
	case e.Key == "":
		return fmt.Sprintf("section [%s]: %s", e.Section, e.Msg)
	default:
		return fmt.Sprintf("section [%s], key %q: %s", e.Section, e.Key, e.Msg)
	}
}

// ConfigErrors unpacks every *ConfigError contained in err, which may be a
// single error or an errors.Join of several.
func ConfigErrors(err error) []*ConfigError {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []*ConfigError
		for _, e := range joined.Unwrap() {
			out = append(out, ConfigErrors(e)...)
		}
		return out
	}
	var ce *ConfigError
	if errors.As(err, &ce) {
		return []*ConfigError{ce}
	}
	return nil
}

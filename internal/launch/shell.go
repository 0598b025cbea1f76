package launch

import (
	"errors"
	"fmt"

	"github.com/google/shlex"
)

// ErrEmptyCommand is returned for a command string with no words.
var ErrEmptyCommand = errors.New("empty command")

// Split tokenizes a command string using shell word-splitting rules:
// whitespace separates words, quotes and backslashes group them.
func Split(command string) ([]string, error) {
	args, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("failed to split %q: %w", command, err)
	}
	if len(args) == 0 {
		return nil, ErrEmptyCommand
	}
	return args, nil
}

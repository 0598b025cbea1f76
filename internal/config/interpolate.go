package config

import (
	"fmt"
	"strings"
)

// maxInterpolationDepth bounds chains of %(name)s references.
const maxInterpolationDepth = 10

// interpolate expands %(name)s references to other keys of the same section
// (DEFAULT keys included) and turns %% into a literal %.
func interpolate(value string, values map[string]string) (string, error) {
	return expand(value, values, 1)
}

func expand(s string, values map[string]string, depth int) (string, error) {
	if depth > maxInterpolationDepth {
		return "", fmt.Errorf("interpolation nested deeper than %d levels", maxInterpolationDepth)
	}

	var b strings.Builder
	for {
		i := strings.IndexByte(s, '%')
		if i < 0 {
			b.WriteString(s)
			return b.String(), nil
		}
		b.WriteString(s[:i])
		s = s[i:]

		switch {
		case strings.HasPrefix(s, "%%"):
			b.WriteByte('%')
			s = s[2:]

		case strings.HasPrefix(s, "%("):
			end := strings.IndexByte(s, ')')
			if end <= 2 || end+1 >= len(s) || s[end+1] != 's' {
				return "", fmt.Errorf("bad interpolation reference %q", s)
			}
			name := strings.ToLower(s[2:end])
			v, ok := values[name]
			if !ok {
				return "", fmt.Errorf("reference to missing key %q", name)
			}
			if strings.Contains(v, "%") {
				var err error
				if v, err = expand(v, values, depth+1); err != nil {
					return "", err
				}
			}
			b.WriteString(v)
			s = s[end+2:]

		default:
			return "", fmt.Errorf("'%%' must be followed by '%%' or '(', found %q (write %%%% for a literal %%)", s)
		}
	}
}

package shell

import (
	"fmt"
	"strings"
)

// splitArgs splits a command line on whitespace. Double quotes group words
// and a backslash escapes the next character.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		inQuote bool
		escaped bool
		started bool
	)
	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
			started = true
		case r == '"':
			inQuote = !inQuote
			started = true
		case !inQuote && (r == ' ' || r == '\t'):
			if started {
				args = append(args, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	if inQuote {
		return nil, fmt.Errorf("unterminated quote")
	}
	if escaped {
		cur.WriteRune('\\')
	}
	if started {
		args = append(args, cur.String())
	}
	return args, nil
}

// keyValues parses key=value arguments. Repeated keys are collected in order.
func keyValues(args []string) (map[string][]string, error) {
	out := make(map[string][]string)
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("expected key=value, got %q", a)
		}
		out[k] = append(out[k], v)
	}
	return out, nil
}

func last(kv map[string][]string, key string) string {
	vs := kv[key]
	if len(vs) == 0 {
		return ""
	}
	return vs[len(vs)-1]
}

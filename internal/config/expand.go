package config

import (
	"os"
	"strings"
)

// expandLayer resolves ${VAR} and $VAR references in a conf file against the
// layers already merged below it, so a later file sees the keys an earlier one
// set, as it would when the files are sourced one after the other. A
// reference to a key assigned earlier in the same file, or to a key no lower
// layer sets, is left for the dotenv codec. Single-quoted values and values
// with an escaped \$ are not touched.
func expandLayer(content string, lower func(key string) (string, bool)) string {
	defined := map[string]bool{}
	lines := strings.Split(content, "\n")

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		key, value, ok := strings.Cut(strings.TrimPrefix(trimmed, "export "), "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)

		v := strings.TrimSpace(value)
		if strings.Contains(v, "$") && !strings.HasPrefix(v, "'") && !strings.Contains(v, `\$`) {
			eq := strings.Index(line, "=")
			lines[i] = line[:eq+1] + os.Expand(line[eq+1:], func(name string) string {
				if !isKeyName(name) {
					return "$" + name
				}
				if !defined[strings.ToUpper(name)] {
					if val, ok := lower(name); ok && !strings.ContainsAny(val, "$\"'\\\n") {
						return val
					}
				}
				return "${" + name + "}"
			})
		}
		defined[strings.ToUpper(key)] = true
	}
	return strings.Join(lines, "\n")
}

func isKeyName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

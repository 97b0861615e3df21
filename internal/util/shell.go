package util

import (
	"strings"
)

// shellSpecial lists the bytes a POSIX shell splits, expands or globs on.
const shellSpecial = " \t\n\"'`$\\|&;()<>*?[]{}~#!"

// ShellEscape returns s as a single shell word, single-quoted when needed.
func ShellEscape(s string) string {
	if s != "" && !strings.ContainsAny(s, shellSpecial) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// ShellJoin renders argv as a single copy-pasteable command line.
func ShellJoin(argv []string) string {
	words := make([]string, len(argv))
	for i, arg := range argv {
		words[i] = ShellEscape(arg)
	}
	return strings.Join(words, " ")
}

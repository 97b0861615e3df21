package util

import (
	"testing"
)

func TestShellEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"20240101", "20240101"},
		{"/opt/fink/bin/stream2raw.py", "/opt/fink/bin/stream2raw.py"},
		{"local[*]", "'local[*]'"},
		{"ztf public", "'ztf public'"},
		{"it's", `'it'\''s'`},
		{"", "''"},
		{"$HOME", "'$HOME'"},
		{"~/fink", "'~/fink'"},
		{"a{b,c}", "'a{b,c}'"},
	}

	for _, tt := range tests {
		if got := ShellEscape(tt.in); got != tt.want {
			t.Errorf("ShellEscape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestShellJoin(t *testing.T) {
	argv := []string{"spark-submit", "--master", "local[*]", "/opt/fink/bin/raw2science.py", "-night", "20240101", "-note", "two words"}
	want := "spark-submit --master 'local[*]' /opt/fink/bin/raw2science.py -night 20240101 -note 'two words'"
	if got := ShellJoin(argv); got != want {
		t.Errorf("ShellJoin() = %q, want %q", got, want)
	}
}

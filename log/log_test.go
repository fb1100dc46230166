package log

import (
	"bytes"
	"slices"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Level
	}{
		{"debug", LevelDebug},
		{"verbose", LevelVerbose},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"WARN", LevelWarn},
		{"bogus", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Format
	}{
		{"json", FormatJSON},
		{"text", FormatText},
		{"JSON", FormatJSON},
		{"bogus", DefaultFormat},
		{"", DefaultFormat},
	}

	for _, tt := range tests {
		if got := ParseFormat(tt.input); got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLevels(t *testing.T) {
	t.Parallel()

	got := slices.Collect(Levels())
	want := []string{"debug", "verbose", "info", "warn", "error"}

	if !slices.Equal(got, want) {
		t.Errorf("Levels() = %v, want %v", got, want)
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := Make(&buf,
		WithLevel(LevelWarn),
		WithPretty(false),
		WithTimeLayout("none"),
	)

	l.Info("hidden")
	l.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged below level: %q", out)
	}

	if !strings.Contains(out, "shown") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestLoggerVerboseLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := Make(&buf,
		WithLevel(LevelVerbose),
		WithPretty(false),
		WithTimeLayout("none"),
	)

	l.Verbose("expanding")

	out := buf.String()
	if !strings.Contains(out, "VERBOSE") {
		t.Errorf("level name not rewritten: %q", out)
	}
}

func TestLoggerTee(t *testing.T) {
	t.Parallel()

	var out, tee bytes.Buffer

	l := Make(&out,
		WithPretty(false),
		WithTimeLayout("none"),
		WithTee(&tee),
	)

	l.Info("mirrored")

	if !strings.Contains(out.String(), "mirrored") {
		t.Errorf("primary output missing message: %q", out.String())
	}

	if !strings.Contains(tee.String(), "mirrored") {
		t.Errorf("tee output missing message: %q", tee.String())
	}
}

func TestLoggerWrapOverrides(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := Make(&buf,
		WithLevel(LevelError),
		WithPretty(false),
		WithTimeLayout("none"),
	)

	if l.Level() != LevelError {
		t.Fatalf("Level() = %v, want %v", l.Level(), LevelError)
	}

	w := l.Wrap(WithLevel(LevelDebug))

	if w.Level() != LevelDebug {
		t.Errorf("wrapped Level() = %v, want %v", w.Level(), LevelDebug)
	}

	// The original logger keeps its configuration.
	if l.Level() != LevelError {
		t.Errorf("original Level() = %v, want %v", l.Level(), LevelError)
	}
}

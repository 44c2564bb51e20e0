package ui

import (
	"strings"
	"testing"
)

func TestTable(t *testing.T) {
	out := Styles.Table(
		[]string{"METHOD", "PATH"},
		[][]string{{"GET", "/api/spotify/login"}, {"GET", "/healthz"}},
	)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), out)
	}
	if !strings.Contains(lines[1], "/api/spotify/login") || !strings.Contains(lines[2], "/healthz") {
		t.Errorf("unexpected rows %q", lines)
	}
	if strings.Index(lines[1], "/api") != strings.Index(lines[2], "/healthz") {
		t.Errorf("expected aligned columns, got %q", lines)
	}
}

func TestPalette(t *testing.T) {
	p := NewPalette("#000000", "#000000", "#000000", "#000000", "#000000")
	for _, s := range []string{p.OK("ok"), p.Err("err"), p.Warn("warn"), p.Help("help")} {
		if s == "" {
			t.Error("expected rendered text")
		}
	}
	if !strings.Contains(p.Title("title"), "title") {
		t.Error("expected title text")
	}
}

package shared

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	tu "github.com/desertthunder/spotauth/internal/testing"
)

func TestGenerateState(t *testing.T) {
	t.Run("Length And Alphabet", func(t *testing.T) {
		for i := 0; i < 200; i++ {
			state, err := GenerateState()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !IsValidState(state) {
				t.Fatalf("generated invalid state %q", state)
			}
		}
	})

	t.Run("Independent Values", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			state, _ := GenerateState()
			if seen[state] {
				t.Fatalf("state %q generated twice", state)
			}
			seen[state] = true
		}
	})

	t.Run("Rejects Biased Bytes", func(t *testing.T) {
		src := bytes.NewReader(append(bytes.Repeat([]byte{255}, 8), bytes.Repeat([]byte{0, 61}, 20)...))

		state, err := generateState(src, 4)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if state != "A9A9" {
			t.Errorf("expected A9A9, got %s", state)
		}
	})

	t.Run("Source Failure", func(t *testing.T) {
		_, err := generateState(&tu.FCloser{}, StateLength)
		if err == nil {
			t.Fatal("expected error from failing source")
		}
	})
}

func TestIsValidState(t *testing.T) {
	tc := []struct {
		in   string
		want bool
	}{
		{"abcdefghABCDEFGH", true},
		{"0123456789abcdef", true},
		{"short", false},
		{"abcdefghABCDEFG-", false},
		{"abcdefghABCDEFGHI", false},
		{"", false},
	}

	for _, tt := range tc {
		if got := IsValidState(tt.in); got != tt.want {
			t.Errorf("IsValidState(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	ll, err := ParseLevel("debug")
	if err != nil || ll != log.DebugLevel {
		t.Errorf("expected debug level, got %v (%v)", ll, err)
	}

	ll, err = ParseLevel("")
	if err != nil || ll != log.InfoLevel {
		t.Errorf("expected info level for empty name, got %v (%v)", ll, err)
	}

	if _, err := ParseLevel("loud"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := WithLogger(NewLogger(&buf), "component", "test")
	SetLogLevel(logger, log.WarnLevel)

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("expected info message to be filtered")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "component=test") {
		t.Errorf("unexpected log output %q", out)
	}
}

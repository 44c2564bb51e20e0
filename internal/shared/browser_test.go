package shared

import (
	"errors"
	"slices"
	"testing"
)

func TestBrowserCommand(t *testing.T) {
	const loginURL = "http://localhost:8888/api/spotify/login"

	tc := []struct {
		name    string
		goos    string
		browser string
		want    []string
	}{
		{name: "darwin", goos: "darwin", want: []string{"open", loginURL}},
		{name: "linux", goos: "linux", want: []string{"xdg-open", loginURL}},
		{name: "windows", goos: "windows", want: []string{"rundll32", "url.dll,FileProtocolHandler", loginURL}},
		{name: "BROWSER overrides platform", goos: "linux", browser: "firefox --new-tab", want: []string{"firefox", "--new-tab", loginURL}},
		{name: "blank BROWSER ignored", goos: "darwin", browser: "  ", want: []string{"open", loginURL}},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := browserCommand(tt.goos, tt.browser, loginURL)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !slices.Equal(cmd.Args, tt.want) {
				t.Errorf("expected args %v, got %v", tt.want, cmd.Args)
			}
		})
	}

	t.Run("Unsupported Platform", func(t *testing.T) {
		if _, err := browserCommand("plan9", "", loginURL); !errors.Is(err, ErrUnsupportedPlatform) {
			t.Errorf("expected ErrUnsupportedPlatform, got %v", err)
		}
	})
}

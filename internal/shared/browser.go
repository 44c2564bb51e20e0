package shared

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// browserLaunchers maps GOOS to the command that hands a URL to the desktop's default browser.
var browserLaunchers = map[string][]string{
	"darwin":  {"open"},
	"linux":   {"xdg-open"},
	"freebsd": {"xdg-open"},
	"openbsd": {"xdg-open"},
	"windows": {"rundll32", "url.dll,FileProtocolHandler"},
}

// OpenBrowser starts a browser on loginURL without waiting for it to exit.
//
// $BROWSER, when set, takes precedence over the platform launcher.
func OpenBrowser(loginURL string) error {
	cmd, err := browserCommand(runtime.GOOS, os.Getenv("BROWSER"), loginURL)
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return cmd.Process.Release()
}

func browserCommand(goos, browser, loginURL string) (*exec.Cmd, error) {
	if fields := strings.Fields(browser); len(fields) > 0 {
		return exec.Command(fields[0], append(fields[1:], loginURL)...), nil
	}

	launcher, ok := browserLaunchers[goos]
	if !ok {
		return nil, fmt.Errorf("%w: no browser launcher for %s", ErrUnsupportedPlatform, goos)
	}
	return exec.Command(launcher[0], append(launcher[1:], loginURL)...), nil
}

package main

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/desertthunder/spotauth/internal/ui"
	"github.com/urfave/cli/v3"
)

// Login opens {prefix}/login of the configured proxy in the default browser.
func (r *Runner) Login(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	host := config.Server.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	loginURL := fmt.Sprintf("http://%s%s/login", net.JoinHostPort(host, strconv.Itoa(config.Server.Port)), config.Server.Prefix)

	if cmd.Bool("no-browser") {
		return r.writePlain("%s\n", loginURL)
	}

	r.writePlain("→ Opening browser for Spotify authorization...\n")
	if err := r.openBrowser(loginURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlain("%s\n", ui.Styles.Warn("⚠ Could not open browser automatically."))
		return r.writePlain("Please open this URL in your browser:\n%s\n", loginURL)
	}

	return nil
}

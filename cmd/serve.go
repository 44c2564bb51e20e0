package main

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/desertthunder/spotauth/internal/server"
	"github.com/desertthunder/spotauth/internal/services"
	"github.com/desertthunder/spotauth/internal/shared"
	"github.com/desertthunder/spotauth/internal/ui"
	"github.com/urfave/cli/v3"
)

// Serve runs the proxy until the command context is cancelled.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	overridden := *config
	config = &overridden
	if host := cmd.String("host"); host != "" {
		config.Server.Host = host
	}
	if port := cmd.Int("port"); port < 0 || port > 65535 {
		return fmt.Errorf("%w: --port %d out of range", shared.ErrInvalidArgument, port)
	} else if port != 0 {
		config.Server.Port = int(port)
	}

	if err := config.Validate(); err != nil {
		return err
	}

	proxy, err := r.buildProxy(config)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", config.Server.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", config.Server.Addr(), err)
	}

	r.logger.Info("starting proxy", "prefix", config.Server.Prefix, "redirect_uri", config.Credentials.Spotify.RedirectURI)
	return server.Serve(ctx, server.NewHTTPServer(config.Server.Addr(), proxy), ln, r.logger)
}

// Routes prints the route table for the configured prefix.
func (r *Runner) Routes(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	proxy := server.NewProxy(config, routeOnly{}, r.logger)

	descriptions := map[string]string{
		config.Server.Prefix + "/login":         "redirect to Spotify authorize, sets state cookie",
		config.Server.Prefix + "/callback":      "validate state, exchange code, redirect with tokens",
		config.Server.Prefix + "/refresh_token": "exchange refresh_token for access_token (JSON)",
		"/refresh_token":                        "alias of the prefixed refresh_token",
		"/healthz":                              "liveness",
	}

	var rows [][]string
	for _, route := range proxy.Routes() {
		rows = append(rows, []string{route.Method, route.Path, descriptions[route.Path]})
	}

	r.writePlain("%s\n", ui.Styles.Title("Routes on "+config.Server.Addr()))
	return r.writePlain("%s", ui.Styles.Table([]string{"METHOD", "PATH", "DESCRIPTION"}, rows))
}

func (r *Runner) buildProxy(config *shared.Config) (http.Handler, error) {
	client := r.httpClient
	if client == nil {
		client = &http.Client{Timeout: config.Provider.TimeoutDuration()}
	}

	spotify, err := services.NewSpotifyClient(config.Credentials.Spotify, config.Provider, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spotify client: %w", err)
	}

	return server.NewProxy(config, spotify, r.logger), nil
}

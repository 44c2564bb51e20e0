package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/spotauth/internal/services"
	"github.com/desertthunder/spotauth/internal/shared"
	"github.com/desertthunder/spotauth/internal/ui"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// ConfigInit writes the example configuration to --config.
//
// With --client-id and --client-secret it writes a complete config carrying those credentials instead.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	clientID, clientSecret := cmd.String("client-id"), cmd.String("client-secret")

	switch {
	case clientID == "" && clientSecret == "":
		if err := shared.CreateConfigFile(configPath); err != nil {
			return err
		}
	case clientID == "" || clientSecret == "":
		return fmt.Errorf("%w: --client-id and --client-secret must be given together", shared.ErrMissingArgument)
	default:
		config := shared.DefaultConfig()
		config.Credentials.Spotify.ClientID = clientID
		config.Credentials.Spotify.ClientSecret = clientSecret
		if err := shared.SaveConfig(configPath, config); err != nil {
			return err
		}
	}

	r.logger.Info("config file created", "path", configPath)
	r.writePlain("%s config written to %s\n", ui.Styles.OK("✓"), configPath)
	if clientID != "" {
		return nil
	}
	return r.writePlain("%s\n", ui.Styles.Help("Set client_id/client_secret or export CLIENT_ID and CLIENT_SECRET."))
}

// ConfigShow prints the effective configuration (file + environment) with the client secret masked.
func (r *Runner) ConfigShow(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	shown := *config
	shown.Credentials.Spotify = config.Credentials.Spotify.Masked()

	if err := config.Validate(); err != nil {
		if errors.Is(err, shared.ErrMissingCredentials) {
			r.logger.Warn("configuration incomplete", "error", err)
		} else {
			return err
		}
	}

	return r.writeJSON(shown, cmd.Bool("pretty"))
}

// routeOnly satisfies [services.OAuthService] for building the route table without credentials.
type routeOnly struct{}

var _ services.OAuthService = routeOnly{}

func (routeOnly) AuthURL(string) string { return "" }
func (routeOnly) Name() string          { return "none" }

func (routeOnly) Exchange(context.Context, string) (*oauth2.Token, error) {
	return nil, fmt.Errorf("%w: no provider configured", shared.ErrMissingCredentials)
}

func (routeOnly) Refresh(context.Context, string) (*oauth2.Token, error) {
	return nil, fmt.Errorf("%w: no provider configured", shared.ErrMissingCredentials)
}


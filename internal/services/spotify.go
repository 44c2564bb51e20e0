// Spotify implementation of [OAuthService]
//
// Endpoints based on https://developer.spotify.com/documentation/web-api/tutorials/code-flow
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/desertthunder/spotauth/internal/shared"
	"golang.org/x/oauth2"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
)

// DefaultScopes are requested when the configuration lists none.
var DefaultScopes = []string{"user-read-private", "user-read-email"}

// SpotifyClient implements [OAuthService] against the Spotify accounts service.
type SpotifyClient struct {
	config     *oauth2.Config
	httpClient *http.Client
}

// NewSpotifyClient creates a client from credentials and provider endpoints.
//
// A nil client gets a fresh [http.Client] with the provider timeout.
func NewSpotifyClient(creds shared.SpotifyConfig, provider shared.ProviderConfig, client *http.Client) (*SpotifyClient, error) {
	if creds.ClientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}
	if creds.ClientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	redirectURI := creds.RedirectURI
	if redirectURI == "" {
		redirectURI = shared.DefaultRedirectURI
	}

	scopes := creds.Scopes
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}

	authURL, tokenURL := provider.AuthURL, provider.TokenURL
	if authURL == "" {
		authURL = spotifyAuthURL
	}
	if tokenURL == "" {
		tokenURL = spotifyTokenURL
	}

	if client == nil {
		client = &http.Client{Timeout: provider.TimeoutDuration()}
	}

	return &SpotifyClient{
		config: &oauth2.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			RedirectURL:  redirectURI,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   authURL,
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		httpClient: client,
	}, nil
}

func (s *SpotifyClient) Name() string {
	return "Spotify"
}

// AuthURL returns the authorize URL with response_type, client_id, redirect_uri, scope and state.
func (s *SpotifyClient) AuthURL(state string) string {
	return s.config.AuthCodeURL(state)
}

// Exchange trades an authorization code for tokens.
func (s *SpotifyClient) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.config.Exchange(s.withClient(ctx), code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrTokenExchange, err)
	}
	return token, nil
}

// Refresh obtains a new access token with refreshToken.
func (s *SpotifyClient) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	if refreshToken == "" {
		return nil, shared.ErrNoRefreshToken
	}

	src := s.config.TokenSource(s.withClient(ctx), &oauth2.Token{RefreshToken: refreshToken})
	token, err := src.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrRefreshFailed, err)
	}
	return token, nil
}

// Config returns the underlying oauth2 configuration.
func (s *SpotifyClient) Config() *oauth2.Config {
	return s.config
}

func (s *SpotifyClient) withClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
}

// ProviderStatus extracts the upstream HTTP status and OAuth error code from err.
//
// Returns zero values for transport errors.
func ProviderStatus(err error) (int, string) {
	var re *oauth2.RetrieveError
	if !errors.As(err, &re) {
		return 0, ""
	}

	status := 0
	if re.Response != nil {
		status = re.Response.StatusCode
	}
	return status, re.ErrorCode
}

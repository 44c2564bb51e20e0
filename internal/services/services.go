// package services defines the OAuthService interface for talking to an OAuth provider's
// authorize and token endpoints.
package services

import (
	"context"

	"golang.org/x/oauth2"
)

// OAuthService is the provider side of the authorization code flow.
type OAuthService interface {
	// AuthURL builds the provider authorize URL carrying state.
	AuthURL(state string) string

	// Exchange trades an authorization code for an access/refresh token pair.
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)

	// Refresh trades a refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)

	// Name returns the name of the provider (e.g., "Spotify")
	Name() string
}

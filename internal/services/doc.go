// Package services implements the [OAuthService] interface for Spotify.
//
// # Token Endpoint
//
// [SpotifyClient] wraps an [oauth2.Config] whose endpoint uses [oauth2.AuthStyleInHeader], so every
// token request carries "Authorization: Basic base64(client_id:client_secret)" and a form body:
//   - code exchange: code, redirect_uri, grant_type=authorization_code
//   - refresh: grant_type=refresh_token, refresh_token
//
// Exactly one request is made per call. The provider's JSON response is decoded into an [oauth2.Token].
//
// # Error Handling
//
// Failures are wrapped in typed errors from the shared package:
//   - [shared.ErrTokenExchange] : code exchange failed (transport error or non-2xx status)
//   - [shared.ErrRefreshFailed] : refresh failed
//   - [shared.ErrNoRefreshToken] : empty refresh token, no request is made
//
// [ProviderStatus] recovers the upstream status and OAuth error code for logging.
//
// # Timeouts
//
// Calls are bound to the caller's context. The HTTP client additionally carries the configured
// provider timeout, which is zero (unbounded) only when explicitly configured that way.
package services

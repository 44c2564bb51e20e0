package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrStateMismatch  = fmt.Errorf("state mismatch")
	ErrAccessDenied   = fmt.Errorf("authorization denied")
	ErrTokenExchange  = fmt.Errorf("token exchange failed")
	ErrRefreshFailed  = fmt.Errorf("token refresh failed")
	ErrNoRefreshToken = fmt.Errorf("no refresh token available")

	// Environment errors
	ErrUnsupportedPlatform = fmt.Errorf("unsupported platform")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)

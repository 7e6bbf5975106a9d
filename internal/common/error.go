package common

import "errors"

// Sentinel errors; match with errors.Is.
var (
	// Transport-level errors.
	ErrNetwork       = errors.New("network error")
	ErrRequestFailed = errors.New("request failed")

	// Auth errors.
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrSessionExpired   = errors.New("session expired")
	ErrForbidden        = errors.New("permission denied")

	// ErrFeatureUnavailable marks endpoints the backend does not serve for
	// the current user (preferences answer 401/404 this way).
	ErrFeatureUnavailable = errors.New("feature unavailable")

	// Form-level validation failed before any network call.
	ErrValidation = errors.New("validation error")

	// ErrDemoMode is returned for server-dependent actions when the client
	// runs against a static demo deployment.
	ErrDemoMode = errors.New("not available in demo mode")
)

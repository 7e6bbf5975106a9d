// Package common contains shared constants and sentinel errors used across
// devfolio components.
package common

// AuthorizationHeaderName carries the bearer token on outbound requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName carries a per-request correlation id.
const RequestIDHeaderName = "X-Request-ID"

// Keys of the persisted client state. The three keys are always cleared
// together.
const (
	StorageKeyToken       = "auth_token"
	StorageKeyUser        = "auth_user"
	StorageKeyPreferences = "user_preferences"
)

// SessionKeys lists every persisted session key.
var SessionKeys = []string{StorageKeyToken, StorageKeyUser, StorageKeyPreferences}

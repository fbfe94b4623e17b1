// Package common contains constants and sentinel errors shared by the client
// packages.
package common

// Metadata keys of the persisted session.
const (
	// TokenStorageKey holds the bearer credential returned by login.
	TokenStorageKey = "jwt_token"
	// UserIDStorageKey holds the id of the signed-in user so a session can be
	// restored on the next start.
	UserIDStorageKey = "user_id"
	// UsernameStorageKey holds the login name shown before the session is
	// restored.
	UsernameStorageKey = "username"
)

// HTTP header names and values used by the API client.
const (
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "
	ContentTypeHeader   = "Content-Type"
	ContentTypeJSON     = "application/json"
	RequestIDHeader     = "X-Request-ID"
)

// Package common contains shared constants and sentinel errors used across
// the campus events client components.
package common

// AuthorizationHeaderName is the HTTP header that carries the bearer access
// token on outbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the authorization scheme prefix used with access tokens.
const BearerScheme = "Bearer"

// RequestIDHeaderName is set on every outbound request so a logical request
// and its retry can be correlated in server logs.
const RequestIDHeaderName = "X-Request-ID"

// Storage keys of the local key/value store.
const (
	// CredentialsKey holds the serialized credential record {access, refresh, user}.
	CredentialsKey = "user"
	// PreferredLanguageKey holds the UI language, independent from the session.
	PreferredLanguageKey = "preferredLanguage"
)

// DefaultAPIURL is the development API base used when nothing else is configured.
const DefaultAPIURL = "http://localhost:8000/api"

// Package client is the authenticated HTTP client of the campus events API.
//
// # Overview
//
// HTTPClient builds every request from the current credential record: the
// stored access token is read right before each attempt, so a token written
// by a login or a refresh is used by the very next request. There are no
// mutable default headers.
//
// # Refresh protocol
//
// A 401 on an authenticated request triggers one exchange of the stored
// refresh token at RefreshPath and one retry with the new access token.
// Concurrent refreshes for the same refresh token are coalesced. When the
// refresh is impossible or rejected, or the retry gets another 401, the
// credential record is cleared and listeners registered with
// OnSessionExpired are notified; the terminal client uses this to fall back
// to the login prompt.
//
// # Error Handling
//
//   - ErrSessionExpired: unrecoverable 401, session dropped.
//   - ErrUnavailable: no response received.
//   - *APIError: any other non-2xx status; Message holds the server text.
//
// Match sentinels with errors.Is and APIError with errors.As (or StatusCode).
package client

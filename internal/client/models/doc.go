// Package models defines client-side data models of the campus events API:
// the credential record persisted between runs, the user profile and its
// role, and the event, registration, faculty and notification resources.
package models

// Package services contains the application services of the campus events
// client: the session store, the route guard, the preferred language and thin
// wrappers over the REST resources (users, events, faculties, notifications).
//
// Every service talks to the API through the authenticated client, so token
// attachment and the refresh-and-retry protocol are handled below this layer.
package services

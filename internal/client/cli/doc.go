// Package cli provides the interactive campus events command-line client.
//
// It wires configuration, local storage, the authenticated API client and
// the services, restores the stored session and runs a REPL. When the
// server ends the session (a refresh was impossible) the user is told to
// log in again and the prompt switches back to the logged-out state.
//
// Commands:
//   - register, login, logout, whoami, status, profile, password
//   - events [upcoming|mine|registered] [search], event <id>
//   - join <eventID>, checkin <eventID>, attendance <eventID>, feedback <eventID>
//   - report <eventID>, upload <eventID> <file> [caption]
//   - notifications, users (admin), faculties (admin)
//   - lang [code], help, exit | quit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli

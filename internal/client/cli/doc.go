// Package cli provides the interactive devfolio command-line client.
//
// It wires configuration, the local session database, the API services and
// an interactive REPL. Typical flow: validate the stored session, then
// execute user commands until exit.
//
// Key features:
//   - Register / Login / Logout
//   - Profile and preferences, including the theme
//   - Project listing with page and status filters, create and delete
//   - Tech stack and repository catalog, batch repository delete
//   - Admin user listing
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli

// Package cli provides the interactive catalog command-line client.
//
// It wires configuration, the local SQLite store, the REST API client, the
// screen controllers and an interactive REPL. Typical flow: probe the
// server, restore a saved session if any, then execute user commands.
//
// Key features:
//   - Signup / Login / Logout, with the session persisted between runs
//   - Catalog list and item detail, served from the offline snapshot when
//     the server is unreachable
//   - Add catalog items with an image from a file, URL or s3:// object
//   - Profile view and edit, profile image download
//   - Notifications with an unread badge kept fresh in the background
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See runREPL for the command list.
package cli

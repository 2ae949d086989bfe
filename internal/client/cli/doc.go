// Package cli provides the interactive gophfood terminal client.
//
// It wires configuration, the credential store, the auth API client, the
// session and the form adapter, then runs a REPL on top of them. Typical
// flow: restore the stored session, start a background connectivity
// watcher, and execute user commands.
//
// Key features:
//   - Register / Login through the surface's form rules
//   - Logout (local credentials are cleared even when offline)
//   - Status with the access token's expiry
//   - Manual token refresh
//   - Ping / NetInfo connectivity diagnostics
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli

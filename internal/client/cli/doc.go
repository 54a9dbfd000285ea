// Package cli provides the interactive shopcart command-line client.
//
// It wires configuration, the session store, the REST client, the session
// manager and the shop controller, then runs a REPL. A stored session is
// restored on startup, so a logged-in user goes straight to the catalog.
//
// Commands:
//   - register / login / logout
//   - items (l), refresh: show or reload the catalog
//   - add <item-id>, cart, orders, checkout
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli

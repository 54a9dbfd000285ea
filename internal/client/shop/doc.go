// Package shop holds the catalog and cart state shown to a logged-in user
// and drives the catalog, cart and order endpoints.
//
// Every operation reports its outcome through a notice.Sink; errors are also
// returned so callers can react, but the notice is the user-facing result.
// Listing the cart or the order history only produces a notice and leaves
// the controller's state alone.
package shop

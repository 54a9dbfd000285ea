// Package session owns the client's authentication state.
//
// A Manager moves between two states, LoggedOut and LoggedIn. Login and
// Restore enter LoggedIn; Logout leaves it. Whenever a session starts or ends
// the attached Listener is told, which is how the shop controller learns to
// load the catalog or forget the cart.
//
// The token and the user profile are persisted together in a store.Store so
// a session survives restarts.
package session

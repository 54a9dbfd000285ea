// Package common contains shared constants and sentinel errors used across
// shopcart components.
package common

// AuthorizationHeaderName carries the bearer token on authenticated requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token inside the Authorization header.
const BearerPrefix = "Bearer "

// Cart lifecycle states shared by client and server.
const (
	CartStatusActive  = "active"
	CartStatusOrdered = "ordered"
)

// Package client talks to the shopcart backend over REST/JSON.
//
// HTTPClient keeps a default header set (Content-Type and, once logged in,
// Authorization: Bearer <token>) that is attached to every request.
// Responses are mapped to errors as follows:
//
//	401                -> ErrUnauthorized
//	other non-2xx      -> *APIError (message from {"error": "..."})
//	transport failure  -> ErrUnavailable
package client

// Package common contains constants and small helpers shared by the client
// packages.
package common

const (
	// AuthorizationHeaderName carries the bearer access token.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the access token in the Authorization header.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName tags each outbound API request for log correlation.
	RequestIDHeaderName = "X-Request-ID"

	// ContentTypeJSON is sent with every API request body.
	ContentTypeJSON = "application/json"
)

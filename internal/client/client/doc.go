// Package client talks to the food-ordering auth API over HTTP.
//
// # Overview
//
//  1. Client is the transport contract: Login, Register, Logout,
//     RefreshToken and Ping.
//  2. HTTPClient implements it with net/http. Login, Register, RefreshToken
//     and Ping go through a bare http.Client. Logout and Do go through a
//     RoundTripper that attaches the stored access token and, on a 401,
//     refreshes the token pair once and replays the request once.
//  3. Concurrent 401s share a single refresh call.
//
// # Error Handling
//
// Failures are *APIError values. Match them with errors.Is against
// ErrUnavailable (no response), ErrUnauthorized (401/403) or ErrServer
// (other statuses). APIError.Message is the text to show the user.
//
// When the refresh itself fails the stored credentials are cleared and the
// handler registered with OnSessionExpired runs; the caller receives the
// original 401.
package client

// Package client talks to the JobTrack HTTP API.
//
// HTTPClient implements Client on top of fiber's fasthttp-based Agent. It
// sends JSON bodies, attaches the bearer token set with SetToken, and maps
// responses to sentinel errors callers can match with errors.Is:
// ErrUnavailable when the server cannot be reached, ErrUnauthorized for 401
// and ErrNotFound for 404. Other failures are returned as *APIError carrying
// the server's message.
package client

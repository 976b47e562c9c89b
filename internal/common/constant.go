package common

// AuthorizationHeaderName is the HTTP header carrying the bearer access token.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the access token in the Authorization header.
const BearerPrefix = "Bearer "

// DateLayout is the ISO-8601 calendar date format used on the wire.
const DateLayout = "2006-01-02"

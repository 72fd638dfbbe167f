// Package auth issues and verifies stateless session tokens and gates
// identity-requiring routes.
//
// A session token is an HS256 JWT carrying a single userId claim with a
// fixed lifetime. Tokens travel over one of two carriers: an httpOnly
// cookie named "token", or an Authorization Bearer header. Extraction tries
// the cookie first and falls back to the header; a request with neither
// fails with core.ErrNoTokenProvided, while malformed, forged, or expired
// credentials all surface as invalid-token errors so callers cannot probe
// which failure occurred.
package auth

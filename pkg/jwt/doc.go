// Package jwt implements signing and verification of JSON Web Tokens using
// HMAC-SHA256.
//
// Service signs and parses tokens for any JSON-serialisable claims
// structure. Claims types may implement Valid() error to get temporal
// validation during parsing. The algorithm is pinned to HS256 and signatures
// are compared in constant time.
package jwt

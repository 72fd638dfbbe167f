package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/taskhub/taskhub/core"
)

// CookieName is the session cookie carrying the raw token.
const CookieName = "token"

// CookieMaxAge bounds the cookie at the transport layer. It deliberately
// outlives the token itself: a stale cookie fails verification rather than
// silently disappearing, which keeps 401 responses consistent.
const CookieMaxAge = 24 * time.Hour

// Transport defines how session tokens travel between client and server.
type Transport interface {
	// Extract returns the raw credential from the request, stripped of
	// transport framing. Absence is reported as core.ErrNoTokenProvided.
	Extract(r *http.Request) (string, error)

	// Set sends the credential in the response, if the carrier supports it.
	Set(w http.ResponseWriter, token string)

	// Clear removes the credential from the client, if the carrier
	// supports it.
	Clear(w http.ResponseWriter)
}

// CookieTransport carries the token in an httpOnly cookie.
type CookieTransport struct {
	secure bool
}

// NewCookieTransport creates a cookie transport. secure marks cookies
// Secure and SameSite=Strict for production-equivalent deployments; dev
// mode uses Lax so plain-HTTP local setups keep working.
func NewCookieTransport(secure bool) *CookieTransport {
	return &CookieTransport{secure: secure}
}

func (t *CookieTransport) Extract(r *http.Request) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", core.ErrNoTokenProvided
	}
	return cookie.Value, nil
}

func (t *CookieTransport) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, t.cookie(token, int(CookieMaxAge.Seconds())))
}

func (t *CookieTransport) Clear(w http.ResponseWriter) {
	http.SetCookie(w, t.cookie("", -1))
}

func (t *CookieTransport) cookie(value string, maxAge int) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if t.secure {
		sameSite = http.SameSiteStrictMode
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: sameSite,
	}
}

// BearerTransport carries the token in the Authorization header. The header
// must be exactly two space-separated parts with a case-insensitive
// "Bearer" scheme.
type BearerTransport struct{}

func NewBearerTransport() *BearerTransport {
	return &BearerTransport{}
}

func (t *BearerTransport) Extract(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", core.ErrNoTokenProvided
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 {
		return "", core.ErrTokenError
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", core.ErrTokenMalformed
	}
	return parts[1], nil
}

// Set is a no-op: responses return the token in the body, clients echo it
// back themselves.
func (t *BearerTransport) Set(http.ResponseWriter, string) {}

func (t *BearerTransport) Clear(http.ResponseWriter) {}

// CompositeTransport tries carriers in order. Extraction stops at the first
// carrier that yields a candidate; a carrier that is present but malformed
// fails the request with its own error rather than falling through.
type CompositeTransport struct {
	transports []Transport
}

func NewCompositeTransport(transports ...Transport) *CompositeTransport {
	return &CompositeTransport{transports: transports}
}

func (t *CompositeTransport) Extract(r *http.Request) (string, error) {
	for _, transport := range t.transports {
		token, err := transport.Extract(r)
		if err == nil {
			return token, nil
		}
		if err != core.ErrNoTokenProvided {
			return "", err
		}
	}
	return "", core.ErrNoTokenProvided
}

func (t *CompositeTransport) Set(w http.ResponseWriter, token string) {
	for _, transport := range t.transports {
		transport.Set(w, token)
	}
}

func (t *CompositeTransport) Clear(w http.ResponseWriter) {
	for _, transport := range t.transports {
		transport.Clear(w)
	}
}

// DefaultTransport is the carrier stack used by the API: cookie first, then
// bearer header.
func DefaultTransport(secureCookies bool) Transport {
	return NewCompositeTransport(
		NewCookieTransport(secureCookies),
		NewBearerTransport(),
	)
}

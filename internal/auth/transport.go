package auth

import "net/http"

type TokenSource interface {
	Token() string
}

// BearerTransport attaches the session token to every backend request that
// does not already carry an Authorization header.
type BearerTransport struct {
	Base   http.RoundTripper
	Tokens TokenSource
}

func NewBearerTransport(tokens TokenSource, base http.RoundTripper) *BearerTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &BearerTransport{Base: base, Tokens: tokens}
}

func (t *BearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token := t.Tokens.Token()
	if token == "" || req.Header.Get("Authorization") != "" {
		return t.Base.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+token)
	return t.Base.RoundTrip(clone)
}

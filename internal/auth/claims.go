package auth

import (
	"fmt"
	"time"

	"hotelbooking/internal/entities"

	"github.com/golang-jwt/jwt/v5"
)

const (
	msRoleClaim  = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"
	msNameClaim  = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name"
	msEmailClaim = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress"
	msIDClaim    = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier"
)

// Claims is the subset of the backend token the portal reads. The signature
// is not verified here: the backend verifies every request it receives.
type Claims struct {
	Subject   string
	Email     string
	Name      string
	Roles     []string
	ExpiresAt time.Time
}

func ParseClaims(token string) (*Claims, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type %T", parsed.Claims)
	}

	c := &Claims{
		Subject: firstString(mc, "sub", msIDClaim, "nameid"),
		Email:   firstString(mc, "email", msEmailClaim),
		Name:    firstString(mc, "name", msNameClaim, "unique_name"),
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	for _, key := range []string{"role", "roles", msRoleClaim} {
		c.Roles = append(c.Roles, stringsOf(mc[key])...)
	}
	return c, nil
}

// Expired reports whether the token carried an exp claim in the past.
func (c *Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// User derives a profile when the auth response carried none.
func (c *Claims) User() entities.User {
	return entities.User{
		ID:    c.Subject,
		Email: c.Email,
		Name:  c.Name,
		Roles: append([]string(nil), c.Roles...),
	}
}

func firstString(mc jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		if s, ok := mc[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func stringsOf(v any) []string {
	switch t := v.(type) {
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return t
	}
	return nil
}

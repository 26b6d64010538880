// Package auth verifies session tokens issued by the external auth backend.
// Issuing tokens for real users is not this service's job; Issue exists for local tooling and tests.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// MinSecretLen is the minimum length for the HS256 secret.
const MinSecretLen = 32

// Roles carried in the role claim.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Claims is the session token payload.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the caller may manage roles and applications.
func (c *Claims) IsAdmin() bool { return c != nil && c.Role == RoleAdmin }

// Config holds verifier settings.
type Config struct {
	Secret string `mapstructure:"jwt_secret" validate:"omitempty,min=32"`
	Issuer string `mapstructure:"issuer"`
	// CookieName is where browsers carry the session token when no Authorization header is sent.
	CookieName string        `mapstructure:"cookie_name"`
	TTL        time.Duration `mapstructure:"ttl"`
}

// Verifier checks HS256 session tokens.
type Verifier struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewVerifier(cfg Config) (*Verifier, error) {
	if len(cfg.Secret) < MinSecretLen {
		return nil, fmt.Errorf("jwt secret must be at least %d characters", MinSecretLen)
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Verifier{secret: []byte(cfg.Secret), issuer: cfg.Issuer, ttl: ttl}, nil
}

// Verify parses the token and checks signature, algorithm, expiry and issuer.
func (v *Verifier) Verify(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired()}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return claims, nil
}

// Issue signs a token for subject. The portal never hands these to real users.
func (v *Verifier) Issue(subject, email, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    v.issuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(v.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

type ctxKey int

const (
	tokenKey ctxKey = iota
	claimsKey
)

// WithToken stores the raw bearer token so outbound calls can forward it.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFrom returns the raw token stored by WithToken, or "".
func TokenFrom(ctx context.Context) string {
	s, _ := ctx.Value(tokenKey).(string)
	return s
}

func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// ClaimsFrom returns the verified claims, or nil for anonymous requests.
func ClaimsFrom(ctx context.Context) *Claims {
	c, _ := ctx.Value(claimsKey).(*Claims)
	return c
}

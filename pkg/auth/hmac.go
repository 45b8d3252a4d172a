package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

// HMACIssuer signs and verifies HS256 access tokens for locally registered users.
type HMACIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewHMACIssuer creates an issuer. The secret must be kept private to this service.
func NewHMACIssuer(secret, issuer string, ttl time.Duration) *HMACIssuer {
	return &HMACIssuer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue returns a signed access token for the user together with its expiry time.
func (i *HMACIssuer) Issue(userID uuid.UUID, username string) (string, time.Time, error) {
	issuedAt := i.now()
	expiresAt := issuedAt.Add(i.ttl)
	token, err := jwt.NewBuilder().
		JwtID(uuid.NewString()).
		Subject(userID.String()).
		Issuer(i.issuer).
		IssuedAt(issuedAt).
		NotBefore(issuedAt).
		Expiration(expiresAt).
		Claim(UsernameClaim, username).
		Build()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to build token: %w", err)
	}
	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), i.secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return string(signed), expiresAt, nil
}

// TTL returns the lifetime of issued tokens.
func (i *HMACIssuer) TTL() time.Duration {
	return i.ttl
}

// Verify implements Verifier.
func (i *HMACIssuer) Verify(_ context.Context, tokenString string) (jwt.Token, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256(), i.secret),
		jwt.WithValidate(true),
		jwt.WithIssuer(i.issuer),
		jwt.WithClock(jwt.ClockFunc(i.now)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}
	return token, nil
}

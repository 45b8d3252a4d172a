package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

// UsernameClaim is the private claim carrying the human-readable user name.
const UsernameClaim = "preferred_username"

// Principal is the identity associated with a request. The zero value is the anonymous principal.
type Principal struct {
	UserID   uuid.UUID
	Username string
}

// Anonymous returns the principal of an unauthenticated request.
func Anonymous() Principal {
	return Principal{}
}

// IsAuthenticated reports whether the principal carries a user identity.
func (p Principal) IsAuthenticated() bool {
	return p.UserID != uuid.Nil
}

// PrincipalFromToken builds a Principal from the `sub` and `preferred_username` claims of a verified token.
func PrincipalFromToken(token jwt.Token) (Principal, error) {
	subject, ok := token.Subject()
	if !ok || subject == "" {
		return Principal{}, fmt.Errorf("token has no `sub` claim")
	}
	userID, err := uuid.Parse(subject)
	if err != nil {
		return Principal{}, fmt.Errorf("token subject is not a valid user ID: %w", err)
	}
	var username string
	// the username claim is optional
	_ = token.Get(UsernameClaim, &username)
	return Principal{UserID: userID, Username: username}, nil
}

type principalKey struct{}

// WithPrincipal stores the principal in the context.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal stored in the context, or the anonymous principal.
func PrincipalFromContext(ctx context.Context) Principal {
	p, ok := ctx.Value(principalKey{}).(Principal)
	if !ok {
		return Anonymous()
	}
	return p
}

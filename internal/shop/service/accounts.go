package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	shoperrors "github.com/zhiidetopchubaeva/shop/internal/shop/errors"
	"github.com/zhiidetopchubaeva/shop/internal/shop/store"
	"github.com/zhiidetopchubaeva/shop/internal/shop/store/db"
	"github.com/zhiidetopchubaeva/shop/pkg/auth"
)

// AccountService registers users, issues tokens and resolves request principals.
type AccountService interface {
	// Register creates a user. Returns ErrUserAlreadyExists if the username or email is taken.
	Register(ctx context.Context, account RegisterDto) (*UserDto, error)

	// Login exchanges credentials for an access token.
	// Returns ErrInvalidCredentials on a bad username or password.
	Login(ctx context.Context, credentials LoginDto) (*TokenDto, error)

	// Resolve turns a bearer token into the principal of the request.
	Resolve(ctx context.Context, token string) (auth.Principal, error)
}

// TokenIssuer signs access tokens for local users.
type TokenIssuer interface {
	Issue(userID uuid.UUID, username string) (string, time.Time, error)
	TTL() time.Duration
}

// Registrar creates the user in an external identity provider and returns its ID.
type Registrar interface {
	Register(ctx context.Context, username, email, password string) (uuid.UUID, error)
}

// ErrLoginUnavailable is returned by Login when tokens are issued by an external identity provider.
var ErrLoginUnavailable = errors.New("login is handled by the identity provider")

// Accounts implements AccountService in one of two modes. In local mode the
// password hash is stored and tokens are issued here. In IdP mode the user
// is created in the identity provider and mirrored locally.
type Accounts struct {
	repository store.UserStore
	verifier   auth.Verifier
	issuer     TokenIssuer
	registrar  Registrar
	logger     *slog.Logger
}

// NewLocalAccountService creates an AccountService that stores credentials and signs its own tokens.
func NewLocalAccountService(repo store.UserStore, issuer *auth.HMACIssuer, logger *slog.Logger) *Accounts {
	return &Accounts{repository: repo, verifier: issuer, issuer: issuer, logger: logger}
}

// NewIdPAccountService creates an AccountService backed by an external identity provider.
func NewIdPAccountService(repo store.UserStore, verifier auth.Verifier, registrar Registrar, logger *slog.Logger) *Accounts {
	return &Accounts{repository: repo, verifier: verifier, registrar: registrar, logger: logger}
}

func (s *Accounts) Register(ctx context.Context, account RegisterDto) (*UserDto, error) {
	// max=72 counts runes, bcrypt counts bytes.
	if len(account.Password) > auth.MaxPasswordBytes {
		return nil, shoperrors.NewValidationError("password", auth.ErrPasswordTooLong.Error())
	}
	params := db.CreateUserParams{
		Username: account.Username,
		Email:    &account.Email,
	}
	if s.registrar != nil {
		id, err := s.registrar.Register(ctx, account.Username, account.Email, account.Password)
		if err != nil {
			return nil, err
		}
		params.ID = id
	} else {
		hash, err := auth.HashPassword(account.Password)
		if err != nil {
			return nil, err
		}
		params.ID = uuid.New()
		params.PasswordHash = &hash
	}

	user, err := s.repository.CreateUser(ctx, params)
	if err != nil {
		return nil, err
	}
	return toUserDto(user), nil
}

func (s *Accounts) Login(ctx context.Context, credentials LoginDto) (*TokenDto, error) {
	if s.issuer == nil {
		return nil, ErrLoginUnavailable
	}
	user, err := s.repository.FindUserByUsername(ctx, credentials.Username)
	if err != nil {
		if errors.Is(err, shoperrors.ErrUserNotFound) {
			return nil, shoperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if user.PasswordHash == nil {
		return nil, shoperrors.ErrInvalidCredentials
	}
	if err := auth.ComparePassword(*user.PasswordHash, credentials.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, shoperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	token, _, err := s.issuer.Issue(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &TokenDto{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.issuer.TTL().Seconds()),
	}, nil
}

func (s *Accounts) Resolve(ctx context.Context, token string) (auth.Principal, error) {
	verified, err := s.verifier.Verify(ctx, token)
	if err != nil {
		return auth.Principal{}, fmt.Errorf("%w: %w", shoperrors.ErrUnauthorized, err)
	}
	principal, err := auth.PrincipalFromToken(verified)
	if err != nil {
		return auth.Principal{}, fmt.Errorf("%w: %w", shoperrors.ErrUnauthorized, err)
	}

	var user *db.User
	if s.registrar != nil {
		// users created directly in the identity provider get their local row on first use
		username := principal.Username
		if username == "" {
			username = principal.UserID.String()
		}
		user, err = s.repository.EnsureUser(ctx, principal.UserID, username)
	} else {
		user, err = s.repository.FindUserByID(ctx, principal.UserID)
	}
	if err != nil {
		if errors.Is(err, shoperrors.ErrUserNotFound) {
			return auth.Principal{}, fmt.Errorf("%w: %w", shoperrors.ErrUnauthorized, err)
		}
		return auth.Principal{}, err
	}
	return auth.Principal{UserID: user.ID, Username: user.Username}, nil
}

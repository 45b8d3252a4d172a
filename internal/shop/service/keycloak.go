package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Nerzal/gocloak/v13"
	"github.com/google/uuid"
	shoperrors "github.com/zhiidetopchubaeva/shop/internal/shop/errors"
	"github.com/zhiidetopchubaeva/shop/pkg/config"
)

// ErrIdPInteractionFailed wraps failures talking to the identity provider.
var ErrIdPInteractionFailed = errors.New("identity provider interaction failed")

// keycloakClient is the subset of *gocloak.GoCloak used for registration.
type keycloakClient interface {
	LoginClient(ctx context.Context, clientID, clientSecret, realm string, scopes ...string) (*gocloak.JWT, error)
	CreateUser(ctx context.Context, token, realm string, user gocloak.User) (string, error)
	SetPassword(ctx context.Context, token, userID, realm, password string, temporary bool) error
	DeleteUser(ctx context.Context, accessToken, realm, userID string) error
}

// KeycloakRegistrar creates users in a Keycloak realm using client credentials.
type KeycloakRegistrar struct {
	client   keycloakClient
	realm    string
	clientID string
	secret   string
	logger   *slog.Logger
}

// NewKeycloakRegistrar creates a registrar for the configured realm.
func NewKeycloakRegistrar(cfg config.KeycloakConfig, logger *slog.Logger) *KeycloakRegistrar {
	return newKeycloakRegistrar(gocloak.NewClient(cfg.URL), cfg, logger)
}

func newKeycloakRegistrar(client keycloakClient, cfg config.KeycloakConfig, logger *slog.Logger) *KeycloakRegistrar {
	return &KeycloakRegistrar{
		client:   client,
		realm:    cfg.Realm,
		clientID: cfg.ClientID,
		secret:   cfg.ClientSecret,
		logger:   logger.With(slog.String("component", "keycloak")),
	}
}

func (k *KeycloakRegistrar) Register(ctx context.Context, username, email, password string) (uuid.UUID, error) {
	token, err := k.client.LoginClient(ctx, k.clientID, k.secret, k.realm)
	if err != nil {
		k.logger.ErrorContext(ctx, "Failed to login", slog.String("error", err.Error()))
		return uuid.Nil, fmt.Errorf("%w: failed to login to Keycloak: %v", ErrIdPInteractionFailed, err)
	}

	userID, err := k.client.CreateUser(ctx, token.AccessToken, k.realm, gocloak.User{
		Username: gocloak.StringP(username),
		Email:    gocloak.StringP(email),
		Enabled:  gocloak.BoolP(true),
	})
	if err != nil {
		k.logger.ErrorContext(ctx, "Failed to create user", slog.String("error", err.Error()))
		var apiErr *gocloak.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.Code {
			case http.StatusConflict:
				return uuid.Nil, shoperrors.ErrUserAlreadyExists
			case http.StatusBadRequest:
				return uuid.Nil, shoperrors.NewValidationError("", apiErr.Message)
			}
		}
		return uuid.Nil, ErrIdPInteractionFailed
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		k.rollback(ctx, token.AccessToken, userID)
		return uuid.Nil, fmt.Errorf("%w: unexpected user id %q", ErrIdPInteractionFailed, userID)
	}

	if err := k.client.SetPassword(ctx, token.AccessToken, userID, k.realm, password, false); err != nil {
		k.logger.ErrorContext(ctx, "Failed to set password", slog.String("error", err.Error()))
		k.rollback(ctx, token.AccessToken, userID)
		return uuid.Nil, fmt.Errorf("%w: failed to set password: %v", ErrIdPInteractionFailed, err)
	}
	return id, nil
}

func (k *KeycloakRegistrar) rollback(ctx context.Context, token, userID string) {
	if err := k.client.DeleteUser(ctx, token, k.realm, userID); err != nil {
		k.logger.WarnContext(ctx, "Failed to delete half-registered user", slog.String("user_id", userID), slog.String("error", err.Error()))
	}
}

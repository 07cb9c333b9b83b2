// Package firebase wraps the managed platform the backend delegates to:
// account management through the Admin SDK auth client, the hierarchical
// realtime database, and the Identity Toolkit REST endpoints the Admin SDK
// does not cover (password sign-in, password-reset emails).
package firebase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/domain"
)

// Clients bundles the platform handles the rest of the app depends on.
type Clients struct {
	Auth     *auth.Client
	Database *db.Client
}

func NewClients(ctx context.Context, cfg *config.Config) (*Clients, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{
		DatabaseURL: cfg.FirebaseDatabaseURL,
		ProjectID:   cfg.FirebaseProjectID,
	}, option.WithCredentialsFile(cfg.FirebaseCredentials))
	if err != nil {
		return nil, fmt.Errorf("firebase app init: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth init: %w", err)
	}

	dbClient, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase database init: %w", err)
	}

	return &Clients{Auth: authClient, Database: dbClient}, nil
}

// IdentityProvider implements domain.IdentityProvider on top of the Admin
// SDK plus the Identity Toolkit REST client for the operations the SDK
// deliberately omits.
type IdentityProvider struct {
	auth   *auth.Client
	signin *SignInClient
}

var _ domain.IdentityProvider = (*IdentityProvider)(nil)

func NewIdentityProvider(authClient *auth.Client, webAPIKey string) *IdentityProvider {
	return &IdentityProvider{
		auth: authClient,
		signin: &SignInClient{
			APIKey:     webAPIKey,
			HTTPClient: &http.Client{Timeout: 10 * time.Second},
		},
	}
}

func (p *IdentityProvider) CreateUser(ctx context.Context, email, password string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password)
	user, err := p.auth.CreateUser(ctx, params)
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}
	return user.UID, nil
}

func (p *IdentityProvider) SignInWithPassword(ctx context.Context, email, password string) (*domain.SignInResult, error) {
	return p.signin.SignInWithPassword(ctx, email, password)
}

func (p *IdentityProvider) VerifyIDToken(ctx context.Context, idToken string) (*domain.AuthClaims, error) {
	token, err := p.auth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}
	email, _ := token.Claims["email"].(string)
	return &domain.AuthClaims{UID: token.UID, Email: email}, nil
}

func (p *IdentityProvider) UpdateEmail(ctx context.Context, uid, email string) error {
	params := (&auth.UserToUpdate{}).Email(email)
	if _, err := p.auth.UpdateUser(ctx, uid, params); err != nil {
		return fmt.Errorf("update email: %w", err)
	}
	return nil
}

func (p *IdentityProvider) UpdatePassword(ctx context.Context, uid, newPassword string) error {
	params := (&auth.UserToUpdate{}).Password(newPassword)
	if _, err := p.auth.UpdateUser(ctx, uid, params); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (p *IdentityProvider) GetEmail(ctx context.Context, uid string) (string, error) {
	user, err := p.auth.GetUser(ctx, uid)
	if err != nil {
		return "", fmt.Errorf("get user: %w", err)
	}
	return user.Email, nil
}

func (p *IdentityProvider) RevokeRefreshTokens(ctx context.Context, uid string) error {
	return p.auth.RevokeRefreshTokens(ctx, uid)
}

func (p *IdentityProvider) DeleteUser(ctx context.Context, uid string) error {
	return p.auth.DeleteUser(ctx, uid)
}

func (p *IdentityProvider) SendPasswordReset(ctx context.Context, email string) error {
	return p.signin.SendPasswordReset(ctx, email)
}

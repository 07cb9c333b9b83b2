package domain

import "context"

// AuthClaims are the verified claims of a bearer token.
type AuthClaims struct {
	UID   string
	Email string
}

// TokenVerifier validates an ID token locally and returns its subject.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*AuthClaims, error)
}

// SignInResult is returned by a password sign-in against the identity
// provider.
type SignInResult struct {
	UID          string
	IDToken      string
	RefreshToken string
}

// IdentityProvider is the external identity platform. All account state
// (credentials, email, sessions) lives there; profiles live in the tree
// store keyed by the uid it issues.
type IdentityProvider interface {
	CreateUser(ctx context.Context, email, password string) (string, error)
	SignInWithPassword(ctx context.Context, email, password string) (*SignInResult, error)
	VerifyIDToken(ctx context.Context, idToken string) (*AuthClaims, error)
	UpdateEmail(ctx context.Context, uid, email string) error
	UpdatePassword(ctx context.Context, uid, newPassword string) error
	GetEmail(ctx context.Context, uid string) (string, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
	DeleteUser(ctx context.Context, uid string) error
	SendPasswordReset(ctx context.Context, email string) error
}

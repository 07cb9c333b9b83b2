package auth

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"go-jobboard-backend/internal/domain"
)

// Verifier checks Firebase ID tokens against the securetoken JWKS locally,
// avoiding a platform round-trip per request. Issuer and audience are pinned
// to the project.
type Verifier struct {
	provider *Provider
	issuer   string
	audience string
}

func NewVerifier(provider *Provider, projectID string) *Verifier {
	return &Verifier{
		provider: provider,
		issuer:   "https://securetoken.google.com/" + projectID,
		audience: projectID,
	}
}

func (v *Verifier) VerifyIDToken(_ context.Context, idToken string) (*domain.AuthClaims, error) {
	token, err := jwt.Parse(idToken, v.provider.KeyFunc,
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("token verification failed: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	email, _ := claims["email"].(string)

	return &domain.AuthClaims{UID: sub, Email: email}, nil
}

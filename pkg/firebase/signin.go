package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go-jobboard-backend/internal/domain"
)

// Identity Toolkit endpoints. Email/password sign-in is a client-side
// operation the Admin SDK does not expose, so it is called over REST with
// the project's web API key.
const (
	signInWithPasswordURL = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"
	sendOobCodeURL        = "https://identitytoolkit.googleapis.com/v1/accounts:sendOobCode"
)

type SignInClient struct {
	APIKey     string
	HTTPClient *http.Client
	// BaseURLOverride points the client at an emulator or test server.
	BaseURLOverride string
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID      string `json:"localId"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	Error        *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignInWithPassword exchanges email/password credentials for an ID token.
// Any rejection (unknown user, bad password, disabled account) surfaces as
// an error; callers map it to their own taxonomy.
func (c *SignInClient) SignInWithPassword(ctx context.Context, email, password string) (*domain.SignInResult, error) {
	var out signInResponse
	if err := c.post(ctx, c.endpoint(signInWithPasswordURL), signInRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}, &out); err != nil {
		return nil, err
	}
	if out.Error != nil {
		return nil, fmt.Errorf("sign-in rejected: %s", out.Error.Message)
	}
	if out.IDToken == "" {
		return nil, fmt.Errorf("sign-in rejected")
	}
	return &domain.SignInResult{
		UID:          out.LocalID,
		IDToken:      out.IDToken,
		RefreshToken: out.RefreshToken,
	}, nil
}

// SendPasswordReset asks the platform to email a password-reset link.
func (c *SignInClient) SendPasswordReset(ctx context.Context, email string) error {
	var out signInResponse
	if err := c.post(ctx, c.endpoint(sendOobCodeURL), map[string]string{
		"requestType": "PASSWORD_RESET",
		"email":       email,
	}, &out); err != nil {
		return err
	}
	if out.Error != nil {
		return fmt.Errorf("password reset rejected: %s", out.Error.Message)
	}
	return nil
}

func (c *SignInClient) endpoint(url string) string {
	if c.BaseURLOverride != "" {
		return c.BaseURLOverride
	}
	return url + "?key=" + c.APIKey
}

func (c *SignInClient) post(ctx context.Context, url string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("identity toolkit call: %w", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("identity toolkit response: %w", err)
	}
	return nil
}

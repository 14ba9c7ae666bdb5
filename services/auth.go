package services

import (
	"context"
	"fmt"

	"github.com/descope/go-sdk/descope/client"
	"github.com/golang-jwt/jwt/v5"

	"github.com/rpupo63/portfolio-backend/config"
)

// TokenVerifier validates a bearer session token and returns the id of the
// user it belongs to. Mutating endpoints are gated on a successful Verify.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// NewVerifier picks the verifier from config: Descope session validation when
// DESCOPE_PROJECT_ID is set, the local JWT verifier otherwise.
func NewVerifier(cfg map[string]string) (TokenVerifier, error) {
	if projectID := config.GetString(cfg, "DESCOPE_PROJECT_ID", ""); projectID != "" {
		return NewDescopeVerifier(projectID)
	}

	secret := config.GetString(cfg, "AUTH_JWT_SECRET", "")
	if secret == "" {
		return nil, fmt.Errorf("either DESCOPE_PROJECT_ID or AUTH_JWT_SECRET must be set")
	}
	return NewLocalVerifier(secret), nil
}

// DescopeVerifier validates sessions issued by the Descope auth provider.
type DescopeVerifier struct {
	client *client.DescopeClient
}

func NewDescopeVerifier(projectID string) (*DescopeVerifier, error) {
	c, err := client.NewWithConfig(&client.Config{ProjectID: projectID})
	if err != nil {
		return nil, fmt.Errorf("init descope client: %w", err)
	}
	return &DescopeVerifier{client: c}, nil
}

func (v *DescopeVerifier) Verify(ctx context.Context, token string) (string, error) {
	authorized, session, err := v.client.Auth.ValidateSessionWithToken(ctx, token)
	if err != nil {
		return "", err
	}
	if !authorized || session == nil {
		return "", fmt.Errorf("session token rejected")
	}
	return session.ID, nil
}

// LocalVerifier validates HS256 JWTs signed with a shared secret, so the
// service runs without the hosted auth provider.
type LocalVerifier struct {
	secret []byte
}

func NewLocalVerifier(secret string) *LocalVerifier {
	return &LocalVerifier{secret: []byte(secret)}
}

func (v *LocalVerifier) Verify(_ context.Context, token string) (string, error) {
	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}

	subject, err := parsed.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return subject, nil
}

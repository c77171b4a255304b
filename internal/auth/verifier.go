// Package auth verifies bearer tokens and turns the result into an
// allow/deny policy decision for the routing layer.
package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ytakahashi/todo-backend/internal/config"
)

const (
	ReasonMissingHeader    = "missing header"
	ReasonMalformedHeader  = "malformed header"
	ReasonInvalidSignature = "invalid signature"
)

var errEmptySubject = errors.New("token has no subject")

// AuthError reports why a request could not be authenticated.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *AuthError) Unwrap() error { return e.Err }

// Identity is the verified caller of a single request.
type Identity struct {
	Subject string
}

// Verifier checks RS256 tokens against a single public key.
type Verifier struct {
	key    *rsa.PublicKey
	logger *slog.Logger
}

// NewVerifier parses the configured PEM certificate (or public key).
func NewVerifier(cfg config.AuthConfig, logger *slog.Logger) (*Verifier, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.Certificate))
	if err != nil {
		return nil, fmt.Errorf("failed to parse signing certificate: %w", err)
	}
	return &Verifier{key: key, logger: logger}, nil
}

// Verify validates an Authorization header value of the form
// "Bearer <token>" and returns the token's subject.
func (v *Verifier) Verify(header string) (Identity, error) {
	raw, err := tokenFromHeader(header)
	if err != nil {
		v.logger.Warn("rejected authorization header", "error", err)
		return Identity{}, err
	}

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return v.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	if err == nil && claims.Subject == "" {
		err = errEmptySubject
	}
	if err != nil {
		authErr := &AuthError{Reason: ReasonInvalidSignature, Err: err}
		v.logger.Warn("rejected token", "error", authErr)
		return Identity{}, authErr
	}

	return Identity{Subject: claims.Subject}, nil
}

func tokenFromHeader(header string) (string, error) {
	if header == "" {
		return "", &AuthError{Reason: ReasonMissingHeader}
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return "", &AuthError{Reason: ReasonMalformedHeader}
	}
	return strings.Split(header, " ")[1], nil
}

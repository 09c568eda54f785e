// Package auth issues the signed session tokens handed out at registration,
// and hashes and checks passwords.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserClaim is the user part of the token payload: {"user": {"id": "..."}}.
type UserClaim struct {
	ID string `json:"id"`
}

// Claims holds the registered claims plus the user the token was issued for.
type Claims struct {
	jwt.RegisteredClaims
	User UserClaim `json:"user"`
}

// TokenIssuer signs HS256 tokens with a server-held secret.
type TokenIssuer struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

func NewTokenIssuer(secret []byte, validity time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, validity: validity, now: time.Now}
}

// Issue returns a token for userID expiring after the issuer's validity.
func (i *TokenIssuer) Issue(ctx context.Context, userID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(i.secret) == 0 {
		return "", errors.New("empty signing secret")
	}
	return generateToken(userID, i.secret, i.now(), i.validity)
}

func generateToken(userID string, secretKey []byte, now time.Time, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		User: UserClaim{ID: userID},
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return tokenString, nil
}

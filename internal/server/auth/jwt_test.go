package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// parseToken verifies tok the way a consumer of the token would.
func parseToken(tok string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func TestTokenIssuer_VerifiesWithSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenIssuer([]byte("right-secret"), time.Hour).Issue(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := parseToken(tok, []byte("right-secret"))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.User.ID != "u-1" {
		t.Fatalf("userID mismatch: got %q want %q", claims.User.ID, "u-1")
	}

	if _, err := parseToken(tok, []byte("wrong-secret")); !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
		t.Fatalf("expected jwt.ErrTokenSignatureInvalid, got %v", err)
	}
}

func TestTokenIssuer_ExpiredToken(t *testing.T) {
	t.Parallel()

	iss := NewTokenIssuer([]byte("secret"), 360000*time.Millisecond)
	iss.now = func() time.Time { return time.Now().Add(-time.Hour) }

	tok, err := iss.Issue(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := parseToken(tok, []byte("secret")); !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected jwt.ErrTokenExpired, got %v", err)
	}
}

func TestParse_MalformedString(t *testing.T) {
	t.Parallel()

	if _, err := parseToken("not.a.jwt", []byte("k")); !errors.Is(err, jwt.ErrTokenMalformed) {
		t.Fatalf("expected jwt.ErrTokenMalformed, got %v", err)
	}
}

func TestTokenIssuer_PayloadShapeAndExpiry(t *testing.T) {
	t.Parallel()

	issued := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	iss := NewTokenIssuer([]byte("k"), 360000*time.Millisecond)
	iss.now = func() time.Time { return issued }

	tok, err := iss.Issue(context.Background(), "abc")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("token should have 3 parts, got %d", len(parts))
	}
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}

	var payload struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		Exp int64 `json:"exp"`
		Iat int64 `json:"iat"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.User.ID != "abc" {
		t.Fatalf("user.id = %q, want abc", payload.User.ID)
	}
	if payload.Iat != issued.Unix() {
		t.Fatalf("iat = %d, want %d", payload.Iat, issued.Unix())
	}
	if payload.Exp-payload.Iat != 360 {
		t.Fatalf("exp - iat = %d, want 360", payload.Exp-payload.Iat)
	}
}

func TestTokenIssuer_ParseRoundTrip(t *testing.T) {
	t.Parallel()

	iss := NewTokenIssuer([]byte("k"), time.Minute)
	tok, err := iss.Issue(context.Background(), "u-9")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	claims, err := parseToken(tok, []byte("k"))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.User.ID != "u-9" {
		t.Fatalf("got %q", claims.User.ID)
	}
}

func TestTokenIssuer_Errors(t *testing.T) {
	t.Parallel()

	if _, err := NewTokenIssuer(nil, time.Minute).Issue(context.Background(), "u"); err == nil {
		t.Fatal("expected error for empty secret")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewTokenIssuer([]byte("k"), time.Minute).Issue(ctx, "u"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

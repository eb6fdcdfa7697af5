package auth

import (
	"errors"
	"filevault-backend/config"
	"testing"
	"time"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			AccessSecret:    "access-secret",
			RefreshSecret:   "refresh-secret",
			AccessTokenTTL:  10,
			RefreshTokenTTL: 24,
		},
	}
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	tok, err := GenerateAccessToken("user-123", "device-1", "user@example.com", cfg)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}

	claims, err := ValidateAccessToken(tok, cfg)
	if err != nil {
		t.Fatalf("ValidateAccessToken error: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Fatalf("userId mismatch: got %q want %q", claims.UserID, "user-123")
	}
	if claims.DeviceID != "device-1" {
		t.Fatalf("deviceId mismatch: got %q want %q", claims.DeviceID, "device-1")
	}
	if claims.Email != "user@example.com" {
		t.Fatalf("email mismatch: got %q want %q", claims.Email, "user@example.com")
	}
}

func TestValidateAccessToken_Expired(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	tok, err := generateToken("u1", "d1", "u1@example.com", cfg.Auth.AccessSecret, -1*time.Second)
	if err != nil {
		t.Fatalf("generateToken error: %v", err)
	}

	_, err = ValidateAccessToken(tok, cfg)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	other := testConfig()
	other.Auth.AccessSecret = "some-other-secret"

	tok, err := GenerateAccessToken("u2", "d1", "u2@example.com", cfg)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}

	_, err = ValidateAccessToken(tok, other)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAccessAndRefreshSecretsAreDistinct(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	accessTok, refreshTok, err := GenerateTokenPair("u3", "d1", "u3@example.com", cfg)
	if err != nil {
		t.Fatalf("GenerateTokenPair error: %v", err)
	}

	// A token of one kind must not verify against the other kind's secret.
	if _, err := ValidateRefreshToken(accessTok, cfg); err == nil {
		t.Fatal("access token verified against the refresh secret")
	}
	if _, err := ValidateAccessToken(refreshTok, cfg); err == nil {
		t.Fatal("refresh token verified against the access secret")
	}

	if _, err := ValidateRefreshToken(refreshTok, cfg); err != nil {
		t.Fatalf("ValidateRefreshToken error: %v", err)
	}
}

func TestValidateAccessToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := ValidateAccessToken("not.a.jwt", testConfig())
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

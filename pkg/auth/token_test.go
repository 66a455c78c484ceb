package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/stockroomhq/stockroom-backend/pkg/auth"
	"github.com/stockroomhq/stockroom-backend/pkg/config"
	"github.com/stockroomhq/stockroom-backend/pkg/enums"
)

func jwtConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "stockroom-test",
		ExpirationMinutes: 15,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := jwtConfig()
	userID := uuid.New()
	now := time.Now()

	signed, err := auth.MintAccessToken(cfg, now, auth.AccessTokenPayload{
		UserID:   userID,
		Username: "alice",
		Role:     enums.RoleAdmin,
		JTI:      "session-1",
	})
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}

	claims, err := auth.ParseAccessToken(cfg, signed)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("UserID = %s, want %s", claims.UserID, userID)
	}
	if claims.Username != "alice" {
		t.Fatalf("Username = %q, want alice", claims.Username)
	}
	if claims.Role != enums.RoleAdmin {
		t.Fatalf("Role = %q, want admin", claims.Role)
	}
	if claims.ID != "session-1" {
		t.Fatalf("jti = %q, want session-1", claims.ID)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("Issuer = %q, want %q", claims.Issuer, cfg.Issuer)
	}
}

func TestMintAccessTokenGeneratesJTI(t *testing.T) {
	signed, err := auth.MintAccessToken(jwtConfig(), time.Now(), auth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.RoleStaff,
	})
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}
	claims, err := auth.ParseAccessToken(jwtConfig(), signed)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.ID == "" {
		t.Fatal("jti was not generated")
	}
}

func TestMintAccessTokenValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.JWTConfig
		payload auth.AccessTokenPayload
	}{
		{"missing secret", config.JWTConfig{Issuer: "i", ExpirationMinutes: 5}, auth.AccessTokenPayload{Role: enums.RoleStaff}},
		{"missing issuer", config.JWTConfig{Secret: "s", ExpirationMinutes: 5}, auth.AccessTokenPayload{Role: enums.RoleStaff}},
		{"non-positive expiry", config.JWTConfig{Secret: "s", Issuer: "i"}, auth.AccessTokenPayload{Role: enums.RoleStaff}},
		{"invalid role", jwtConfig(), auth.AccessTokenPayload{Role: enums.Role("owner")}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := auth.MintAccessToken(tc.cfg, time.Now(), tc.payload); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	signed, err := auth.MintAccessToken(jwtConfig(), time.Now(), auth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.RoleStaff,
	})
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}

	bad := jwtConfig()
	bad.Secret = "other-secret"
	if _, err := auth.ParseAccessToken(bad, signed); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	cfg := jwtConfig()
	signed, err := auth.MintAccessToken(cfg, time.Now().Add(-time.Hour), auth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.RoleStaff,
		JTI:    "expired-session",
	})
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}

	if _, err := auth.ParseAccessToken(cfg, signed); err == nil {
		t.Fatal("expected error for expired token")
	}

	claims, err := auth.ParseAccessTokenAllowExpired(cfg, signed)
	if err != nil {
		t.Fatalf("ParseAccessTokenAllowExpired: %v", err)
	}
	if claims.ID != "expired-session" {
		t.Fatalf("jti = %q, want expired-session", claims.ID)
	}
}

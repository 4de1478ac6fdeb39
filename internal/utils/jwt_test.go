// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateJWTToken_RoundTrip(t *testing.T) {
	signed, err := GenerateJWTToken("test-issuer", "ops", time.Hour, "secret-key-0123456")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if signed == "" {
		t.Fatal("expected non-empty token")
	}

	subject, err := ValidateAndParseJWTToken(signed, "secret-key-0123456", "test-issuer")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if subject != "ops" {
		t.Errorf("expected subject 'ops', got %s", subject)
	}
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		subject  string
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", "ops", time.Hour, "key"},
		{"empty subject", "iss", "", time.Hour, "key"},
		{"zero duration", "iss", "ops", 0, "key"},
		{"empty key", "iss", "ops", time.Hour, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := GenerateJWTToken(tt.issuer, tt.subject, tt.duration, tt.key); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestValidateAndParseJWTToken_Rejects(t *testing.T) {
	signed, _ := GenerateJWTToken("iss", "ops", time.Hour, "key-one")

	if _, err := ValidateAndParseJWTToken(signed, "key-two", "iss"); err == nil {
		t.Error("expected signature error")
	}
	if _, err := ValidateAndParseJWTToken(signed, "key-one", "other"); err == nil {
		t.Error("expected issuer error")
	}

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
		Issuer:    "iss",
		Subject:   "ops",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	raw, _ := expired.SignedString([]byte("key-one"))
	_, err := ValidateAndParseJWTToken(raw, "key-one", "iss")
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{Issuer: "iss", Subject: "ops"})
	raw, _ = noExp.SignedString([]byte("key-one"))
	if _, err = ValidateAndParseJWTToken(raw, "key-one", "iss"); err == nil {
		t.Error("expected error for token without expiry")
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{header: "Bearer abc.def", want: "abc.def"},
		{header: "  bearer   abc.def ", want: "abc.def"},
		{header: "Basic YWxpY2U6c2VjcmV0", wantErr: true},
		{header: "Bearer", wantErr: true},
		{header: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAuthorizationHeader) {
					t.Fatalf("expected ErrInvalidAuthorizationHeader, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("expected (%s, nil), got (%s, %v)", tt.want, got, err)
			}
		})
	}
}

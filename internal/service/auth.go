// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-eas-sync/internal/backend"
	"github.com/MKhiriev/go-eas-sync/internal/config"
	"github.com/MKhiriev/go-eas-sync/internal/logger"
	"github.com/MKhiriev/go-eas-sync/internal/utils"
)

type authService struct {
	backend       backend.Backend
	tokenIssuer   string
	tokenSignKey  string
	tokenDuration time.Duration
	logger        *logger.Logger
}

func NewAuthService(b backend.Backend, cfg config.App, log *logger.Logger) AuthService {
	return &authService{
		backend:       b,
		tokenIssuer:   cfg.TokenIssuer,
		tokenSignKey:  cfg.TokenSignKey,
		tokenDuration: cfg.TokenDuration,
		logger:        log,
	}
}

func (a *authService) Authenticate(ctx context.Context, user, password string) (backend.Session, error) {
	if user == "" {
		return nil, ErrAuthFailed
	}
	session, err := a.backend.Logon(ctx, user, password)
	if errors.Is(err, backend.ErrAuthFailed) {
		return nil, fmt.Errorf("%w: %w", ErrAuthFailed, err)
	}
	if err != nil {
		return nil, fmt.Errorf("error logging on to %s backend: %w", a.backend.Name(), err)
	}
	return session, nil
}

func (a *authService) CreateAdminToken(subject string) (string, error) {
	if a.tokenSignKey == "" {
		return "", ErrAdminDisabled
	}
	return utils.GenerateJWTToken(a.tokenIssuer, subject, a.tokenDuration, a.tokenSignKey)
}

func (a *authService) ParseAdminToken(token string) (string, error) {
	if a.tokenSignKey == "" {
		return "", ErrAdminDisabled
	}
	subject, err := utils.ValidateAndParseJWTToken(token, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		a.logger.Debug().Err(err).Msg("rejected admin token")
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return subject, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command admintoken prints a bearer token for the admin endpoints. It
// reads the same APP_TOKEN_* variables as the server.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/MKhiriev/go-eas-sync/internal/config"
	"github.com/MKhiriev/go-eas-sync/internal/logger"
	"github.com/MKhiriev/go-eas-sync/internal/service"
)

func main() {
	subject := flag.String("subject", "", "operator name stored in the token")
	duration := flag.Duration("duration", 0, "token lifetime, overrides APP_TOKEN_DURATION")
	flag.Parse()

	log := logger.NewLogger("admintoken")

	var app config.App
	if err := env.ParseWithOptions(&app, env.Options{Prefix: "APP_"}); err != nil {
		log.Fatal().Err(err).Msg("error reading environment")
	}
	if app.TokenIssuer == "" {
		app.TokenIssuer = "go-eas-sync"
	}
	if *duration > 0 {
		app.TokenDuration = *duration
	}
	if app.TokenDuration <= 0 {
		app.TokenDuration = time.Hour
	}
	if *subject == "" {
		log.Fatal().Msg("-subject is required")
	}

	token, err := service.NewAuthService(nil, app, logger.Nop()).CreateAdminToken(*subject)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating token")
	}
	fmt.Fprintln(os.Stdout, token)
}

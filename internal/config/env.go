// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// secretEnvs may instead be given as <NAME>_FILE pointing at a file that
// holds the value, the way container secrets are mounted. A non-empty
// <NAME> wins over its file.
var secretEnvs = []string{
	"APP_TOKEN_SIGN_KEY",
	"STORAGE_DB_DATABASE_URI",
}

// parseEnv fills cfg from the process environment through the `env` and
// `envPrefix` tags of [StructuredConfig].
func parseEnv(cfg any) error {
	environ, err := environment()
	if err != nil {
		return err
	}
	if err = env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}
	return nil
}

// environment returns the process environment with secret files resolved.
func environment() (map[string]string, error) {
	environ := env.ToMap(os.Environ())
	for _, name := range secretEnvs {
		path, ok := environ[name+"_FILE"]
		if !ok || environ[name] != "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading %s_FILE: %w", name, err)
		}
		environ[name] = strings.TrimRight(string(data), "\r\n")
	}
	return environ, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempConfig(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_EarlierSourceWins verifies that a field set by an earlier source
// is not overwritten by a later one, while zero fields are filled.
func TestBuild_EarlierSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{Version: "1.0.0"}},
		&StructuredConfig{App: App{Version: "2.0.0", TokenIssuer: "issuer"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "issuer", cfg.App.TokenIssuer)
}

func TestBuild_RunsValidation(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		Storage: Storage{DB: DB{Driver: DriverPostgres}},
	})

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("APP_VERSION", "env-version")
	t.Setenv("SYNC_MAX_WINDOW_SIZE", "64")

	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())

	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-version", b.configs[0].App.Version)
	assert.Equal(t, 64, b.configs[0].Sync.MaxWindowSize)
}

// ── withFile ──────────────────────────────────────────────────────────────────

func TestWithFile_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withFile()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

func TestWithFile_AppendsConfig(t *testing.T) {
	path := writeTempConfig(t, "config.yaml", "app:\n  version: yaml-version\n")

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{ConfigFilePath: path})
	b.withFile()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "yaml-version", b.configs[1].App.Version)
}

func TestWithFile_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{ConfigFilePath: "/nonexistent/config.json"})
	b.withFile()

	assert.Error(t, b.err)
}

// ── withDefaults ──────────────────────────────────────────────────────────────

func TestWithDefaults_FillsOnlyZeroFields(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		Sync: Sync{MaxWindowSize: 50},
		Ping: Ping{PollInterval: 5 * time.Second},
	})
	b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Sync.MaxWindowSize)
	assert.Equal(t, 512, cfg.Sync.GlobalWindowSize)
	assert.Equal(t, 100, cfg.Sync.DefaultWindowSize)
	assert.Equal(t, 5*time.Second, cfg.Ping.PollInterval)
	assert.Equal(t, []int{6}, cfg.Ping.ExcludedFolderTypes)
	assert.Equal(t, []string{"SMS"}, cfg.Sync.IgnoredClasses)
	assert.Equal(t, DriverMemory, cfg.Storage.DB.Driver)
	assert.True(t, cfg.Provisioning.IsEnabled())
}

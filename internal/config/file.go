// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MKhiriev/go-eas-sync/models"
)

type fileConfig struct {
	App struct {
		LogLevel      string   `json:"log_level" yaml:"log_level"`
		TokenSignKey  string   `json:"token_sign_key" yaml:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer" yaml:"token_issuer"`
		TokenDuration Duration `json:"token_duration" yaml:"token_duration"`
		Version       string   `json:"version" yaml:"version"`
	} `json:"app" yaml:"app"`

	Server struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		GRPCAddress    string   `json:"grpc_address" yaml:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
		RetryAfter     Duration `json:"retry_after" yaml:"retry_after"`
		ThrottleRPS    float64  `json:"throttle_rps" yaml:"throttle_rps"`
		ThrottleBurst  int      `json:"throttle_burst" yaml:"throttle_burst"`
	} `json:"server" yaml:"server"`

	Storage struct {
		DB struct {
			Driver string `json:"driver" yaml:"driver"`
			DSN    string `json:"dsn" yaml:"dsn"`
		} `json:"db" yaml:"db"`
		Cache struct {
			Size int      `json:"size" yaml:"size"`
			TTL  Duration `json:"ttl" yaml:"ttl"`
		} `json:"cache" yaml:"cache"`
	} `json:"storage" yaml:"storage"`

	Backend struct {
		Kind     string   `json:"kind" yaml:"kind"`
		URL      string   `json:"url" yaml:"url"`
		Timeout  Duration `json:"timeout" yaml:"timeout"`
		SeedFile string   `json:"seed_file" yaml:"seed_file"`
	} `json:"backend" yaml:"backend"`

	Sync struct {
		MaxWindowSize     int      `json:"max_window_size" yaml:"max_window_size"`
		GlobalWindowSize  int      `json:"global_window_size" yaml:"global_window_size"`
		DefaultWindowSize int      `json:"default_window_size" yaml:"default_window_size"`
		TimeBudget        Duration `json:"time_budget" yaml:"time_budget"`
		MemoryLimit       uint64   `json:"memory_limit" yaml:"memory_limit"`
		FolderStatTTL     Duration `json:"folder_stat_ttl" yaml:"folder_stat_ttl"`
		IgnoredClasses    []string `json:"ignored_classes" yaml:"ignored_classes"`
		MaxCollections    int      `json:"max_collections" yaml:"max_collections"`
	} `json:"sync" yaml:"sync"`

	Ping struct {
		MinLifetime         Duration `json:"min_lifetime" yaml:"min_lifetime"`
		MaxLifetime         Duration `json:"max_lifetime" yaml:"max_lifetime"`
		PollInterval        Duration `json:"poll_interval" yaml:"poll_interval"`
		MaxFolders          int      `json:"max_folders" yaml:"max_folders"`
		ExcludedFolderTypes []int    `json:"excluded_folder_types" yaml:"excluded_folder_types"`
	} `json:"ping" yaml:"ping"`

	Provisioning struct {
		Enabled *bool         `json:"enabled" yaml:"enabled"`
		Loose   bool          `json:"loose" yaml:"loose"`
		Policy  models.Policy `json:"policy" yaml:"policy"`
	} `json:"provisioning" yaml:"provisioning"`

	Telemetry struct {
		OTLPEndpoint string `json:"otlp_endpoint" yaml:"otlp_endpoint"`
		Insecure     bool   `json:"insecure" yaml:"insecure"`
		ServiceName  string `json:"service_name" yaml:"service_name"`
	} `json:"telemetry" yaml:"telemetry"`

	Workers struct {
		JanitorInterval Duration `json:"janitor_interval" yaml:"janitor_interval"`
		JanitorMaxAge   Duration `json:"janitor_max_age" yaml:"janitor_max_age"`
	} `json:"workers" yaml:"workers"`
}

// parseFile reads a JSON or YAML config file; the format is chosen by the
// file extension.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		if err = json.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	return fc.toStructured(), nil
}

func (fc *fileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			LogLevel:      fc.App.LogLevel,
			TokenSignKey:  fc.App.TokenSignKey,
			TokenIssuer:   fc.App.TokenIssuer,
			TokenDuration: time.Duration(fc.App.TokenDuration),
			Version:       fc.App.Version,
		},
		Server: Server{
			HTTPAddress:    fc.Server.HTTPAddress,
			GRPCAddress:    fc.Server.GRPCAddress,
			RequestTimeout: time.Duration(fc.Server.RequestTimeout),
			RetryAfter:     time.Duration(fc.Server.RetryAfter),
			ThrottleRPS:    fc.Server.ThrottleRPS,
			ThrottleBurst:  fc.Server.ThrottleBurst,
		},
		Storage: Storage{
			DB: DB{
				Driver: fc.Storage.DB.Driver,
				DSN:    fc.Storage.DB.DSN,
			},
			Cache: Cache{
				Size: fc.Storage.Cache.Size,
				TTL:  time.Duration(fc.Storage.Cache.TTL),
			},
		},
		Backend: Backend{
			Kind:     fc.Backend.Kind,
			URL:      fc.Backend.URL,
			Timeout:  time.Duration(fc.Backend.Timeout),
			SeedFile: fc.Backend.SeedFile,
		},
		Sync: Sync{
			MaxWindowSize:     fc.Sync.MaxWindowSize,
			GlobalWindowSize:  fc.Sync.GlobalWindowSize,
			DefaultWindowSize: fc.Sync.DefaultWindowSize,
			TimeBudget:        time.Duration(fc.Sync.TimeBudget),
			MemoryLimit:       fc.Sync.MemoryLimit,
			FolderStatTTL:     time.Duration(fc.Sync.FolderStatTTL),
			IgnoredClasses:    fc.Sync.IgnoredClasses,
			MaxCollections:    fc.Sync.MaxCollections,
		},
		Ping: Ping{
			MinLifetime:         time.Duration(fc.Ping.MinLifetime),
			MaxLifetime:         time.Duration(fc.Ping.MaxLifetime),
			PollInterval:        time.Duration(fc.Ping.PollInterval),
			MaxFolders:          fc.Ping.MaxFolders,
			ExcludedFolderTypes: fc.Ping.ExcludedFolderTypes,
		},
		Provisioning: Provisioning{
			Enabled: fc.Provisioning.Enabled,
			Loose:   fc.Provisioning.Loose,
			Policy:  fc.Provisioning.Policy,
		},
		Telemetry: Telemetry{
			OTLPEndpoint: fc.Telemetry.OTLPEndpoint,
			Insecure:     fc.Telemetry.Insecure,
			ServiceName:  fc.Telemetry.ServiceName,
		},
		Workers: Workers{
			JanitorInterval: time.Duration(fc.Workers.JanitorInterval),
			JanitorMaxAge:   time.Duration(fc.Workers.JanitorMaxAge),
		},
	}
}

// Duration is a wrapper around time.Duration that decodes from strings like
// "1h" or "30s" in both JSON and YAML files.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	tmp, err := time.ParseDuration(s)
	if err != nil {
		var n int64
		if numErr := node.Decode(&n); numErr != nil {
			return err
		}
		tmp = time.Duration(n)
	}
	*d = Duration(tmp)
	return nil
}

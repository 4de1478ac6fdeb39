// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/MKhiriev/go-eas-sync/models"
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			LogLevel:      "debug",
			TokenIssuer:   "go-eas-sync",
			TokenDuration: time.Hour,
		},
		Server: Server{
			HTTPAddress:    "0.0.0.0:8080",
			GRPCAddress:    "0.0.0.0:9090",
			RequestTimeout: time.Minute,
			RetryAfter:     30 * time.Second,
			ThrottleRPS:    5,
			ThrottleBurst:  20,
		},
		Storage: Storage{
			DB:    DB{Driver: DriverMemory},
			Cache: Cache{Size: 4096, TTL: 5 * time.Minute},
		},
		Backend: Backend{
			Kind:    BackendMemory,
			Timeout: 30 * time.Second,
		},
		Sync: Sync{
			MaxWindowSize:     512,
			GlobalWindowSize:  512,
			DefaultWindowSize: 100,
			TimeBudget:        40 * time.Second,
			MemoryLimit:       512 << 20,
			FolderStatTTL:     time.Hour,
			IgnoredClasses:    []string{string(models.ClassSMS)},
			MaxCollections:    100,
		},
		Ping: Ping{
			MinLifetime:         60 * time.Second,
			MaxLifetime:         59 * time.Minute,
			PollInterval:        30 * time.Second,
			MaxFolders:          300,
			ExcludedFolderTypes: []int{int(models.FolderTypeOutbox)},
		},
		Telemetry: Telemetry{
			ServiceName: "go-eas-sync",
		},
		Workers: Workers{
			JanitorInterval: time.Hour,
			JanitorMaxAge:   90 * 24 * time.Hour,
		},
	}
}

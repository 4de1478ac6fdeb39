// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the configuration flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-grpc-address grpc health server address in format [host]:[port]
//	-db-driver state store driver (postgres, sqlite, memory)
//	-d database DSN
//	-backend backend kind (memory, rest)
//	-backend-url REST backend base URL
//	-seed memory backend seed file
//	-c/-config JSON or YAML file path with configs
//	-log-level log level
//	-token-sign-key admin token signing key
//	-token-issuer admin token issuer name
//	-token-duration admin token duration (e.g., "1h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-otlp-endpoint OpenTelemetry collector endpoint
func ParseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress, grpcServerAddress NetAddress
	var dbDriver, databaseDSN string
	var backendKind, backendURL, seedFile string
	var configPath string
	var logLevel string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var otlpEndpoint string

	fs := flag.NewFlagSet("go-eas-sync", flag.ContinueOnError)
	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc health server address host:port")
	fs.StringVar(&dbDriver, "db-driver", "", "State store driver (postgres, sqlite, memory)")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&backendKind, "backend", "", "Backend kind (memory, rest)")
	fs.StringVar(&backendURL, "backend-url", "", "REST backend base URL")
	fs.StringVar(&seedFile, "seed", "", "Memory backend seed file")
	fs.StringVar(&configPath, "c", "", "JSON or YAML config file path")
	fs.StringVar(&configPath, "config", "", "JSON or YAML config file path (alias)")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Admin token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Admin token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Admin token duration (e.g., 1h, 30m)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&otlpEndpoint, "otlp-endpoint", "", "OpenTelemetry collector endpoint")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			LogLevel:      logLevel,
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{
				Driver: dbDriver,
				DSN:    databaseDSN,
			},
		},
		Backend: Backend{
			Kind:     backendKind,
			URL:      backendURL,
			SeedFile: seedFile,
		},
		Telemetry: Telemetry{
			OTLPEndpoint: otlpEndpoint,
		},
		ConfigFilePath: configPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

package config

import (
	"strings"
	"time"

	"flag"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-token-sign-key session token signing key
//	-token-issuer session token issuer name
//	-token-duration session token duration (e.g., "168h")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-environment runtime environment ("development" or "production")
//	-allowed-origins comma-separated CORS origins
//	-smtp-host / -smtp-port / -smtp-username / -smtp-password / -smtp-from
//	-code-cleanup-interval interval between expired-code purges
func ParseFlags() *StructuredConfig {
	var serverAddress string
	var databaseDSN string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var environment string
	var allowedOrigins string
	var smtpHost string
	var smtpPort int
	var smtpUsername string
	var smtpPassword string
	var smtpFrom string
	var codeCleanupInterval time.Duration

	flag.StringVar(&serverAddress, "a", "", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 168h)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&environment, "environment", "", "Runtime environment")
	flag.StringVar(&allowedOrigins, "allowed-origins", "", "Comma-separated CORS origins")
	flag.StringVar(&smtpHost, "smtp-host", "", "SMTP host")
	flag.IntVar(&smtpPort, "smtp-port", 0, "SMTP port")
	flag.StringVar(&smtpUsername, "smtp-username", "", "SMTP username")
	flag.StringVar(&smtpPassword, "smtp-password", "", "SMTP password")
	flag.StringVar(&smtpFrom, "smtp-from", "", "SMTP sender address")
	flag.DurationVar(&codeCleanupInterval, "code-cleanup-interval", 0, "Expired one-time-code cleanup interval")

	flag.Parse()

	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
			Environment:   environment,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Server: Server{
			HTTPAddress:    serverAddress,
			RequestTimeout: requestTimeout,
			AllowedOrigins: origins,
		},
		SMTP: SMTP{
			Host:     smtpHost,
			Port:     smtpPort,
			Username: smtpUsername,
			Password: smtpPassword,
			From:     smtpFrom,
		},
		Workers: Workers{
			CodeCleanupInterval: codeCleanupInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}

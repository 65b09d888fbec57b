// Package config provides configuration management for ACTS.
//
// This package handles loading and validating ACTS server configuration
// from environment variables and configuration files.
//
// # Configuration Sources
//
// Configuration is loaded from, in increasing precedence:
//
//   - Built-in defaults
//   - The configuration file $ACTS_CONFIG_PATH/acts.yml (optional)
//   - ACTS_* environment variables
//
// Every attribute remembers which source it came from; see
// `actsctl configuration show`.
//
// # Key Configuration Options
//
//   - ACTS_LOG_LEVEL: Logging verbosity
//   - ACTS_AUTH_REQUIRED: Reject requests without a bearer token
//   - ACTS_CORS_ALLOWED_ORIGINS: Origins allowed to call the API
//   - ACTS_LIST_LIMIT_MAX: Maximum number of people returned by a listing
//
// Connection strings and secrets are read from the environment only:
//
//   - DATABASE_URL: Database connection
//   - ACTS_JWT_SECRET: HMAC key for bearer tokens
//   - PORT: Server listen port
package config

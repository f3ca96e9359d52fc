// Package config handles loading and parsing of configuration from YAML files
// and environment variables. It defines the routing policy structure including
// backend URLs, the short-text threshold, per-backend timeouts, and logging,
// merged in priority order: defaults, then environment, then explicit overrides.
package config

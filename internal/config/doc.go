// Package config loads runtime configuration from multiple sources (CLI
// flags, an optional YAML settings file) with precedence: CLI flags > YAML
// settings > Defaults. It exposes strongly typed settings to the rest of the
// application. Environment variables are never consulted.
package config

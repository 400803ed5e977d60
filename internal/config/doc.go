// Package config loads, parses and validates application settings from
// environment variables (prefixed FLASHDECK_), an optional .env file and an
// optional YAML config file. Environment variables take precedence.
package config

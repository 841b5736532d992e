// Package config loads the YAML application configuration with sensible
// defaults for every tunable.
package config

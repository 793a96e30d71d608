package config

import (
	_ "embed"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// DefaultConfigContent returns the embedded defaults
func DefaultConfigContent() string {
	return string(defaultConfig)
}

// Package config loads packwise's settings from layered sources.
//
// Layers, lowest priority first:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the project file: .packwise.toml, packwise.toml or .packwise.yaml
//  3. a .env file in the project root
//  4. the process environment
//
// The .env file never overrides a variable that is set in the process
// environment. The result is an immutable Settings value; nothing else in
// packwise reads the environment.
package config

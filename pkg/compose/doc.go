// Package compose derives the complete build configuration from an
// environment snapshot and the project layout.
//
// Compose is pure: the same Env and Project always produce an equal
// Configuration, and nothing is read from process state. The plugin chain is
// assembled from a declarative table (see plugins.go) so each plugin's
// presence and position can be checked independently of the others.
package compose

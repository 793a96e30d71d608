// Package testutil provides helpers shared by packwise's package tests.
//
// Key components:
//   - NewTestFS / NewTestFSWithFiles: in-memory afero filesystems seeded
//     from a path -> content map
//   - ClearBuildEnv: unsets the build flags for the duration of a test
//
// Usage guidelines:
//   - Filesystem-dependent code takes an afero.Fs so tests stay in memory
//   - All test data should be defined inline, not in external files
package testutil

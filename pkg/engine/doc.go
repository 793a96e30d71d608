// Package engine runs a composed configuration through esbuild.
//
// The configuration is translated once into esbuild build options
// (BuildOptions). Behavior esbuild has no direct option for is supplied as
// esbuild plugins:
//
//   - a virtual entry module importing every configured entry in order
//   - live-reload client modules for hot reload entries
//   - descriptor-based module resolution (.bower.json, bower.json, ...)
//   - the ignore rule
//   - inline style injection while hot reloading, sass passthrough
//   - image inlining below the size limit
//   - progress reporting
//
// Output is written by the engine itself so extracted stylesheets can be
// placed according to the extract-text filename, and so a failing build
// writes nothing.
package engine

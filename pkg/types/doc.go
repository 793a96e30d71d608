// Package types defines the data model shared by packwise's packages: the
// environment snapshot (build mode, hot reload, progress), file classes and
// their transformation rules, plugin descriptors and the composed
// configuration handed to the build engine.
package types

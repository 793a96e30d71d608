// Package resolve finds the entry file of a module directory from its
// package descriptor.
//
// Four descriptor conventions are recognized and tried in a fixed order:
// .bower.json, bower.json, component.json and package.json. The first
// descriptor that names a main file wins. Directories whose descriptors name
// no main file fall back to index.js.
package resolve

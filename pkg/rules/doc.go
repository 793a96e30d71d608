// Package rules decides which transformation pipeline applies to a source
// file.
//
// Files are classified once by extension (Classify) and every recognized
// class maps to exactly one rule (Select). Unknown files get no rule and are
// passed through by the build engine untouched.
//
// # Pipelines
//
//   - script: babel, with the hot flag set while serving with hot reload
//   - css, hot: style, css, postcss, resolve-url (inline strategy)
//   - css: css (minimized in production), postcss, resolve-url (extract strategy)
//   - scss: the css pipeline followed by sass
//   - image: url (inline below 10000 bytes), img (minimize)
//
// The style strategy is global: both style rules of one composition always
// share it.
package rules

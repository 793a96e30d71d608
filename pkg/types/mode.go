package types

// BuildMode selects minification, sourcemap and console-stripping behavior
type BuildMode string

const (
	// BuildModeDevelopment is the default posture: readable output, dev server
	BuildModeDevelopment BuildMode = "development"

	// BuildModeProduction minifies and strips debug statements
	BuildModeProduction BuildMode = "production"
)

// ParseBuildMode maps a NODE_ENV value onto a BuildMode.
// Only the exact value "production" selects production.
func ParseBuildMode(s string) BuildMode {
	if s == string(BuildModeProduction) {
		return BuildModeProduction
	}
	return BuildModeDevelopment
}

// String returns the mode name
func (m BuildMode) String() string {
	return string(m)
}

// Env is the immutable snapshot of the flags the composer derives everything
// from. It is read once at startup and passed by value.
type Env struct {
	BuildMode BuildMode `json:"buildMode" yaml:"buildMode"`
	HotReload bool      `json:"hotReload" yaml:"hotReload"`
	Progress  bool      `json:"progress" yaml:"progress"`
}

// Production reports whether the build mode is production
func (e Env) Production() bool {
	return e.BuildMode == BuildModeProduction
}

// HotModuleReplacement reports whether reload entries and the
// module-replacement plugin apply. Production builds never get them.
func (e Env) HotModuleReplacement() bool {
	return e.HotReload && !e.Production()
}

// StyleStrategy is the global strategy applied to every style rule
func (e Env) StyleStrategy() StyleStrategy {
	if e.HotReload {
		return StrategyInline
	}
	return StrategyExtract
}

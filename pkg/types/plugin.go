package types

// PluginName identifies a plugin descriptor in the chain
type PluginName string

const (
	PluginNoErrors             PluginName = "no-errors"
	PluginDefine               PluginName = "define"
	PluginCommonsChunk         PluginName = "commons-chunk"
	PluginResolver             PluginName = "resolver"
	PluginIgnore               PluginName = "ignore"
	PluginExtractText          PluginName = "extract-text"
	PluginOccurrenceOrder      PluginName = "occurrence-order"
	PluginProgress             PluginName = "progress"
	PluginUglify               PluginName = "uglify"
	PluginHotModuleReplacement PluginName = "hot-module-replacement"
)

// ProgressHandler receives build progress from the engine. fraction is in
// [0,1]; message may or may not start with a "current/total" token.
type ProgressHandler func(fraction float64, message string)

// Plugin is one entry of the ordered plugin chain. Options holds one of the
// typed option structs below, or nil.
type Plugin struct {
	Name    PluginName      `json:"name" yaml:"name"`
	Options interface{}     `json:"options,omitempty" yaml:"options,omitempty"`
	Handler ProgressHandler `json:"-" yaml:"-"`
}

// DefineOptions embeds compile-time constants
type DefineOptions struct {
	Definitions map[string]string `json:"definitions" yaml:"definitions"`
}

// CommonsChunkOptions names the shared bundle
type CommonsChunkOptions struct {
	Name string `json:"name" yaml:"name"`
}

// ResolverOptions lists package descriptor files in priority order
type ResolverOptions struct {
	Descriptors []string `json:"descriptors" yaml:"descriptors"`
	Fields      []string `json:"fields" yaml:"fields"`
	Targets     []string `json:"targets" yaml:"targets"`
}

// IgnoreOptions suppresses modules whose request matches Pattern
type IgnoreOptions struct {
	Pattern string `json:"pattern" yaml:"pattern"`
}

// ExtractTextOptions configures where extracted styles are written
type ExtractTextOptions struct {
	Filename  string `json:"filename" yaml:"filename"`
	AllChunks bool   `json:"allChunks" yaml:"allChunks"`
	Disable   bool   `json:"disable" yaml:"disable"`
}

// UglifyOptions configures code compaction
type UglifyOptions struct {
	Minimize  bool            `json:"minimize" yaml:"minimize"`
	SourceMap bool            `json:"sourceMap" yaml:"sourceMap"`
	Comments  bool            `json:"comments" yaml:"comments"`
	Compress  CompressOptions `json:"compress" yaml:"compress"`
}

// CompressOptions are the statement-stripping switches of UglifyOptions
type CompressOptions struct {
	Warnings     bool `json:"warnings" yaml:"warnings"`
	DropConsole  bool `json:"dropConsole" yaml:"dropConsole"`
	DropDebugger bool `json:"dropDebugger" yaml:"dropDebugger"`
}

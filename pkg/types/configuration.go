package types

// Configuration is the single artifact the composer produces and the build
// engine consumes. It is never modified after composition.
type Configuration struct {
	Context       string        `json:"context" yaml:"context"`
	Entry         []string      `json:"entry" yaml:"entry"`
	Output        Output        `json:"output" yaml:"output"`
	Plugins       []Plugin      `json:"plugins" yaml:"plugins"`
	Resolve       Resolve       `json:"resolve" yaml:"resolve"`
	ResolveLoader ResolveLoader `json:"resolveLoader" yaml:"resolveLoader"`
	Module        Module        `json:"module" yaml:"module"`
	ImageOptions  ImageOptions  `json:"imageOptions" yaml:"imageOptions"`
	Stats         Stats         `json:"stats" yaml:"stats"`
	DevServer     *DevServer    `json:"devServer,omitempty" yaml:"devServer,omitempty"`
}

// Plugin returns the first plugin with the given name
func (c Configuration) Plugin(name PluginName) (Plugin, bool) {
	for _, p := range c.Plugins {
		if p.Name == name {
			return p, true
		}
	}
	return Plugin{}, false
}

// PluginNames returns the plugin chain's names in order
func (c Configuration) PluginNames() []PluginName {
	names := make([]PluginName, 0, len(c.Plugins))
	for _, p := range c.Plugins {
		names = append(names, p.Name)
	}
	return names
}

// Rule returns the module rule for a file class
func (c Configuration) Rule(class FileClass) (Rule, bool) {
	for _, r := range c.Module.Rules {
		if r.Class == class {
			return r, true
		}
	}
	return Rule{}, false
}

// Output describes where and under which names bundles are written
type Output struct {
	Path          string `json:"path" yaml:"path"`
	PublicPath    string `json:"publicPath" yaml:"publicPath"`
	Filename      string `json:"filename" yaml:"filename"`
	ChunkFilename string `json:"chunkFilename" yaml:"chunkFilename"`
}

// Resolve controls how module requests are resolved
type Resolve struct {
	Alias      map[string]string `json:"alias" yaml:"alias"`
	SearchDirs []string          `json:"searchDirs" yaml:"searchDirs"`
	Extensions []string          `json:"extensions" yaml:"extensions"`
}

// ResolveLoader controls how transform steps are located
type ResolveLoader struct {
	SearchDirs      []string `json:"searchDirs" yaml:"searchDirs"`
	Extensions      []string `json:"extensions" yaml:"extensions"`
	PackageMains    []string `json:"packageMains" yaml:"packageMains"`
	ModuleTemplates []string `json:"moduleTemplates" yaml:"moduleTemplates"`
}

// Module holds the per-class rules and files that are never parsed
type Module struct {
	Rules   []Rule   `json:"rules" yaml:"rules"`
	NoParse []string `json:"noParse" yaml:"noParse"`
}

// ImageOptions are the format-specific image minification parameters
type ImageOptions struct {
	Gifsicle GifsicleOptions `json:"gifsicle" yaml:"gifsicle"`
	Jpegtran JpegtranOptions `json:"jpegtran" yaml:"jpegtran"`
	Optipng  OptipngOptions  `json:"optipng" yaml:"optipng"`
	Pngquant PngquantOptions `json:"pngquant" yaml:"pngquant"`
	Svgo     SvgoOptions     `json:"svgo" yaml:"svgo"`
}

type GifsicleOptions struct {
	Interlaced bool `json:"interlaced" yaml:"interlaced"`
}

type JpegtranOptions struct {
	Progressive bool `json:"progressive" yaml:"progressive"`
	Arithmetic  bool `json:"arithmetic" yaml:"arithmetic"`
}

type OptipngOptions struct {
	OptimizationLevel int `json:"optimizationLevel" yaml:"optimizationLevel"`
}

type PngquantOptions struct {
	Floyd float64 `json:"floyd" yaml:"floyd"`
	Speed int     `json:"speed" yaml:"speed"`
}

type SvgoOptions struct {
	Plugins []SvgoPlugin `json:"plugins" yaml:"plugins"`
}

// SvgoPlugin toggles one SVG optimization pass
type SvgoPlugin struct {
	Name    string `json:"name" yaml:"name"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

// Stats is the build reporting preset shared by the build and the dev server
type Stats struct {
	Context      string `json:"context" yaml:"context"`
	Hash         bool   `json:"hash" yaml:"hash"`
	Version      bool   `json:"version" yaml:"version"`
	Timings      bool   `json:"timings" yaml:"timings"`
	Assets       bool   `json:"assets" yaml:"assets"`
	Chunks       bool   `json:"chunks" yaml:"chunks"`
	ChunkModules bool   `json:"chunkModules" yaml:"chunkModules"`
	Modules      bool   `json:"modules" yaml:"modules"`
	Children     bool   `json:"children" yaml:"children"`
	Cached       bool   `json:"cached" yaml:"cached"`
	Reasons      bool   `json:"reasons" yaml:"reasons"`
	Source       bool   `json:"source" yaml:"source"`
	ErrorDetails bool   `json:"errorDetails" yaml:"errorDetails"`
	ChunkOrigins bool   `json:"chunkOrigins" yaml:"chunkOrigins"`
	AssetsSort   string `json:"assetsSort" yaml:"assetsSort"`
}

// DevServer configures the engine's development server. It only exists in
// development builds.
type DevServer struct {
	Stats       Stats             `json:"stats" yaml:"stats"`
	Host        string            `json:"host" yaml:"host"`
	Port        int               `json:"port" yaml:"port"`
	Headers     map[string]string `json:"headers" yaml:"headers"`
	PublicPath  string            `json:"publicPath" yaml:"publicPath"`
	ContentBase string            `json:"contentBase" yaml:"contentBase"`
}

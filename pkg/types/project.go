package types

// Project holds the filesystem layout and dev server settings of the
// project being built. Paths are absolute once loaded by pkg/config.
type Project struct {
	Root      string      `koanf:"root" toml:"root,omitempty"`
	Context   string      `koanf:"context" toml:"context"`
	Entry     string      `koanf:"entry" toml:"entry"`
	OutputDir string      `koanf:"output_dir" toml:"output_dir"`
	Dev       DevSettings `koanf:"dev" toml:"dev"`
}

// DevSettings are the dev server's bind address and the host browsers use
// to reach it
type DevSettings struct {
	Host       string `koanf:"host" toml:"host"`
	Port       int    `koanf:"port" toml:"port"`
	PublicHost string `koanf:"public_host" toml:"public_host"`
}

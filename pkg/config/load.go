package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/packwise/pkg/errors"
	"github.com/arthur-debert/packwise/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// ProjectFiles are the project file names looked up in the project root
var ProjectFiles = []string{".packwise.toml", "packwise.toml", ".packwise.yaml"}

// DotEnvFile is read from the project root when present
const DotEnvFile = ".env"

// envKeys maps the environment variables packwise reads onto config keys
var envKeys = map[string]string{
	"NODE_ENV":                 "env.node_env",
	"PROGRESS":                 "env.progress",
	"HSERVER":                  "env.hserver",
	"PACKWISE_CONTEXT":         "project.context",
	"PACKWISE_ENTRY":           "project.entry",
	"PACKWISE_OUTPUT_DIR":      "project.output_dir",
	"PACKWISE_DEV_HOST":        "project.dev.host",
	"PACKWISE_DEV_PORT":        "project.dev.port",
	"PACKWISE_DEV_PUBLIC_HOST": "project.dev.public_host",
}

// LoadOptions selects the project to load
type LoadOptions struct {
	// Root is the project root; the working directory when empty
	Root string

	// ConfigFile overrides the project file lookup
	ConfigFile string
}

// Load reads all layers and returns the resulting settings
func Load(opts LoadOptions) (Settings, error) {
	logger := logging.GetLogger("config")

	root, err := projectRoot(opts.Root)
	if err != nil {
		return Settings{}, err
	}

	k := koanf.New(".")
	var sources []string

	// 1. Embedded defaults
	if err := k.Load(rawbytes.Provider(defaultConfig), toml.Parser()); err != nil {
		return Settings{}, errors.Wrap(err, errors.ErrConfigParse, "failed to load embedded defaults")
	}
	sources = append(sources, "defaults")

	// 2. Project file
	projectFile, err := findProjectFile(root, opts.ConfigFile)
	if err != nil {
		return Settings{}, err
	}
	if projectFile != "" {
		if err := k.Load(file.Provider(projectFile), parserFor(projectFile)); err != nil {
			return Settings{}, errors.Wrapf(err, errors.ErrConfigParse, "failed to load %s", projectFile).
				WithDetail("path", projectFile)
		}
		sources = append(sources, projectFile)
	}

	// 3. .env file, only for variables the process does not set
	dotEnv := filepath.Join(root, DotEnvFile)
	values, err := readDotEnv(dotEnv)
	if err != nil {
		return Settings{}, err
	}
	if len(values) > 0 {
		if err := k.Load(confmap.Provider(values, "."), nil); err != nil {
			return Settings{}, errors.Wrap(err, errors.ErrConfigLoad, "failed to load .env values")
		}
		sources = append(sources, dotEnv)
	}

	// 4. Process environment
	if err := k.Load(env.Provider("", ".", func(name string) string {
		return envKeys[name]
	}), nil); err != nil {
		return Settings{}, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}
	sources = append(sources, "environment")

	var raw rawSettings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &raw,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &raw, unmarshalConf); err != nil {
		return Settings{}, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	raw.Project.Root = root
	if err := validateProject(raw.Project); err != nil {
		return Settings{}, err
	}

	settings := Settings{
		Env:     raw.Env.toEnv(),
		Project: raw.Project,
		Sources: sources,
	}

	logger.Debug().
		Str("root", root).
		Strs("sources", sources).
		Str("mode", settings.Env.BuildMode.String()).
		Bool("hot", settings.Env.HotReload).
		Bool("progress", settings.Env.Progress).
		Msg("Configuration loaded")

	return settings, nil
}

func projectRoot(root string) (string, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrConfigLoad, "failed to determine working directory")
		}
		root = wd
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrConfigLoad, "invalid project root %s", root)
	}
	return abs, nil
}

func findProjectFile(root, explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", errors.Wrapf(err, errors.ErrNotFound, "config file %s not found", explicit).
				WithDetail("path", explicit)
		}
		return explicit, nil
	}

	for _, name := range ProjectFiles {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

// readDotEnv returns the known variables of a .env file keyed by config
// key, skipping those already set in the process environment
func readDotEnv(path string) (map[string]interface{}, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path).
			WithDetail("path", path)
	}

	values := make(map[string]interface{})
	for name, value := range vars {
		key, known := envKeys[name]
		if !known {
			continue
		}
		if _, set := os.LookupEnv(name); set {
			continue
		}
		values[key] = value
	}
	return values, nil
}

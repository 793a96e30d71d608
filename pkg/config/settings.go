package config

import (
	"github.com/arthur-debert/packwise/pkg/errors"
	"github.com/arthur-debert/packwise/pkg/types"
)

// Settings is everything packwise needs to compose a configuration
type Settings struct {
	Env     types.Env
	Project types.Project

	// Sources lists the layers that contributed, lowest priority first
	Sources []string
}

// rawSettings mirrors the layered key space before interpretation
type rawSettings struct {
	Env     rawEnv        `koanf:"env"`
	Project types.Project `koanf:"project"`
}

type rawEnv struct {
	NodeEnv  string `koanf:"node_env"`
	Progress string `koanf:"progress"`
	HServer  string `koanf:"hserver"`
}

// toEnv applies the flag rules: only "production" selects production, only
// "yes" enables progress and any non-empty hot flag enables hot reload.
// No value is ever an error.
func (r rawEnv) toEnv() types.Env {
	return types.Env{
		BuildMode: types.ParseBuildMode(r.NodeEnv),
		Progress:  r.Progress == "yes",
		HotReload: r.HServer != "",
	}
}

func validateProject(p types.Project) error {
	if p.Entry == "" {
		return errors.New(errors.ErrConfigValid, "project.entry must not be empty")
	}
	if p.OutputDir == "" {
		return errors.New(errors.ErrConfigValid, "project.output_dir must not be empty")
	}
	if p.Dev.Port < 1 || p.Dev.Port > 65535 {
		return errors.Newf(errors.ErrConfigValid, "project.dev.port %d out of range", p.Dev.Port).
			WithDetail("port", p.Dev.Port)
	}
	return nil
}

package config

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/packwise/pkg/errors"
	"github.com/arthur-debert/packwise/pkg/types"
	"github.com/pelletier/go-toml/v2"
)

type projectFile struct {
	Project types.Project `toml:"project"`
}

// WriteProjectFile writes project as a .packwise.toml in dir and returns its
// path. An existing file is only replaced when force is set.
func WriteProjectFile(dir string, project types.Project, force bool) (string, error) {
	path := filepath.Join(dir, ProjectFiles[0])
	if _, err := os.Stat(path); err == nil && !force {
		return "", errors.Newf(errors.ErrConfigWrite, "%s already exists", path).
			WithDetail("path", path)
	}

	project.Root = ""
	data, err := toml.Marshal(projectFile{Project: project})
	if err != nil {
		return "", errors.Wrap(err, errors.ErrConfigWrite, "failed to encode project file")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", errors.Wrapf(err, errors.ErrConfigWrite, "failed to write %s", path).
			WithDetail("path", path)
	}
	return path, nil
}

// DefaultProject returns the project settings of the embedded defaults
func DefaultProject() types.Project {
	return types.Project{
		Context:   "app",
		Entry:     "./app.jsx",
		OutputDir: "public",
		Dev: types.DevSettings{
			Host:       "0.0.0.0",
			Port:       8080,
			PublicHost: "localhost",
		},
	}
}

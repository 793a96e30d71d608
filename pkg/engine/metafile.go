package engine

import (
	"encoding/json"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/packwise/pkg/types"
)

// Asset is one emitted file as reported by the build's metafile
type Asset struct {
	Path       string
	Bytes      int
	EntryPoint string
}

type metafile struct {
	Outputs map[string]metafileOutput `json:"outputs"`
}

type metafileOutput struct {
	Bytes      int    `json:"bytes"`
	EntryPoint string `json:"entryPoint,omitempty"`
}

// Assets lists the outputs recorded in an esbuild metafile, sorted by path.
// Paths are relative to the output directory and follow the extracted style
// names the build writes.
func Assets(cfg types.Configuration, raw string) ([]Asset, error) {
	if raw == "" {
		return nil, nil
	}
	var meta metafile
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return nil, err
	}

	extractTo := extractFilename(cfg)
	assets := make([]Asset, 0, len(meta.Outputs))
	for key, out := range meta.Outputs {
		path := filepath.FromSlash(key)
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.Context, path)
		}
		if extractTo != "" {
			path = StylePath(cfg.Output.Path, path, extractTo)
		}
		if rel, err := filepath.Rel(cfg.Output.Path, path); err == nil {
			path = rel
		}
		assets = append(assets, Asset{
			Path:       filepath.ToSlash(path),
			Bytes:      out.Bytes,
			EntryPoint: out.EntryPoint,
		})
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].Path < assets[j].Path })
	return assets, nil
}

// extractFilename returns the extracted stylesheet name pattern, or "" when
// styles are not extracted
func extractFilename(cfg types.Configuration) string {
	if p, ok := cfg.Plugin(types.PluginExtractText); ok {
		if opts, ok := p.Options.(types.ExtractTextOptions); ok && !opts.Disable {
			return opts.Filename
		}
	}
	return ""
}

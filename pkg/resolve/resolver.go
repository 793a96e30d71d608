package resolve

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/packwise/pkg/errors"
	"github.com/arthur-debert/packwise/pkg/logging"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spf13/afero"
)

// DefaultDescriptors is the descriptor priority order
var DefaultDescriptors = []string{".bower.json", "bower.json", "component.json", "package.json"}

// IndexFile is used when no descriptor names a main file
const IndexFile = "index.js"

const defaultCacheSize = 512

// Resolution is the entry file found for a module directory
type Resolution struct {
	Dir        string
	Descriptor string
	Main       string
	Path       string
}

type entry struct {
	res   Resolution
	found bool
}

// Resolver resolves module directories against descriptor files. Results
// are cached per directory, so a Resolver must not outlive changes to the
// descriptors it has read.
type Resolver struct {
	fs          afero.Fs
	descriptors []string
	fields      []string
	extensions  []string
	cache       *lru.Cache[string, entry]
}

// Option configures a Resolver
type Option func(*Resolver)

// WithDescriptors overrides the descriptor files and their priority
func WithDescriptors(names ...string) Option {
	return func(r *Resolver) {
		r.descriptors = names
	}
}

// WithFields sets the descriptor fields naming the main file, in priority
func WithFields(fields ...string) Option {
	return func(r *Resolver) {
		r.fields = fields
	}
}

// WithExtensions sets the extensions tried when a main file is named
// without one
func WithExtensions(exts ...string) Option {
	return func(r *Resolver) {
		r.extensions = exts
	}
}

// New creates a resolver reading from fs
func New(fs afero.Fs, opts ...Option) (*Resolver, error) {
	cache, err := lru.New[string, entry](defaultCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to create descriptor cache")
	}

	r := &Resolver{
		fs:          fs,
		descriptors: DefaultDescriptors,
		fields:      []string{"main"},
		extensions:  []string{".js"},
		cache:       cache,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// ResolveDir resolves the entry file of dir. found is false when dir has no
// usable descriptor and no index file.
func (r *Resolver) ResolveDir(dir string) (Resolution, bool, error) {
	dir = filepath.Clean(dir)
	if cached, ok := r.cache.Get(dir); ok {
		return cached.res, cached.found, nil
	}

	res, found, err := r.resolveDir(dir)
	if err != nil {
		return Resolution{}, false, err
	}

	r.cache.Add(dir, entry{res: res, found: found})
	return res, found, nil
}

func (r *Resolver) resolveDir(dir string) (Resolution, bool, error) {
	logger := logging.GetLogger("resolve")

	for _, name := range r.descriptors {
		descriptor := filepath.Join(dir, name)
		main, ok, err := r.readMain(descriptor)
		if err != nil {
			return Resolution{}, false, err
		}
		if !ok {
			continue
		}

		path, ok := r.existingFile(filepath.Join(dir, main))
		if !ok {
			logger.Debug().Str("descriptor", descriptor).Str("main", main).Msg("Main file does not exist")
			continue
		}

		logger.Trace().Str("dir", dir).Str("descriptor", name).Str("path", path).Msg("Resolved module")
		return Resolution{Dir: dir, Descriptor: name, Main: main, Path: path}, true, nil
	}

	index := filepath.Join(dir, IndexFile)
	if r.isFile(index) {
		return Resolution{Dir: dir, Main: IndexFile, Path: index}, true, nil
	}
	return Resolution{}, false, nil
}

// readMain returns the main file named by descriptor. ok is false when the
// descriptor does not exist or names no main file.
func (r *Resolver) readMain(descriptor string) (string, bool, error) {
	data, err := afero.ReadFile(r.fs, descriptor)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		if info, statErr := r.fs.Stat(descriptor); statErr == nil && info.IsDir() {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, errors.ErrDescriptorRead, "failed to read %s", descriptor).
			WithDetail("path", descriptor)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return "", false, errors.Wrapf(err, errors.ErrDescriptorParse, "invalid descriptor %s", descriptor).
			WithDetail("path", descriptor)
	}

	for _, field := range r.fields {
		if main := mainValue(fields[field]); main != "" {
			return main, true, nil
		}
	}
	return "", false, nil
}

// mainValue accepts a string or, as Bower allows, a list whose first
// element is the main file
func mainValue(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return strings.TrimSpace(single)
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return strings.TrimSpace(list[0])
	}
	return ""
}

// existingFile returns path, or path completed with one of the extensions
// or an index file, whichever exists first
func (r *Resolver) existingFile(path string) (string, bool) {
	if r.isFile(path) {
		return path, true
	}
	for _, ext := range r.extensions {
		if ext != "" && r.isFile(path+ext) {
			return path + ext, true
		}
	}
	if index := filepath.Join(path, IndexFile); r.isFile(index) {
		return index, true
	}
	return "", false
}

func (r *Resolver) isFile(path string) bool {
	info, err := r.fs.Stat(path)
	return err == nil && !info.IsDir()
}

func (r *Resolver) isDir(path string) bool {
	info, err := r.fs.Stat(path)
	return err == nil && info.IsDir()
}

// ResolveModule looks for the module directory <searchDir>/<name> in
// importerDir and each of its parents, nearest first, and resolves the
// first one found
func (r *Resolver) ResolveModule(name, importerDir string, searchDirs []string) (Resolution, bool, error) {
	dir := filepath.Clean(importerDir)
	for {
		for _, searchDir := range searchDirs {
			candidate := filepath.Join(dir, searchDir, filepath.FromSlash(name))
			if !r.isDir(candidate) {
				continue
			}
			res, found, err := r.ResolveDir(candidate)
			if err != nil || found {
				return res, found, err
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Resolution{}, false, nil
		}
		dir = parent
	}
}

// Purge drops all cached resolutions
func (r *Resolver) Purge() {
	r.cache.Purge()
}

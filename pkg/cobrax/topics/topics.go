// Package topics adds file-backed help topics to a cobra command tree, so
// `app help <topic>` can print longer guides next to command help.
package topics

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// Topic is one help document
type Topic struct {
	Name    string
	Path    string
	Content string
}

// Options configures a Manager
type Options struct {
	// Extensions of files treated as topics; defaults to .md and .txt
	Extensions []string
	// Renderer defaults to PlainRenderer
	Renderer Renderer
}

// Manager holds the topics found in a filesystem
type Manager struct {
	topics     map[string]Topic
	extensions []string
	renderer   Renderer
}

// Load collects every topic file below dir in fsys
func Load(fsys fs.FS, dir string, opts Options) (*Manager, error) {
	m := &Manager{
		topics:     make(map[string]Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}
	if len(m.extensions) == 0 {
		m.extensions = []string{".md", ".txt"}
	}
	if m.renderer == nil {
		m.renderer = PlainRenderer{}
	}

	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !m.supported(path.Ext(p)) {
			return nil
		}
		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(path.Base(p), path.Ext(p))
		m.topics[name] = Topic{Name: name, Path: p, Content: string(content)}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load help topics: %w", err)
	}
	return m, nil
}

func (m *Manager) supported(ext string) bool {
	for _, e := range m.extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Get finds a topic by name. Flag spellings ("--format") also match an
// "option-format" topic.
func (m *Manager) Get(name string) (Topic, bool) {
	name = strings.TrimLeft(name, "-")
	if t, ok := m.topics[name]; ok {
		return t, true
	}
	t, ok := m.topics["option-"+name]
	return t, ok
}

// Names returns the sorted topic names
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render returns a topic's content through the manager's renderer
func (m *Manager) Render(t Topic) string {
	return m.renderer.Render(t.Content, path.Ext(t.Path))
}

// WriteList prints the topic index for app
func (m *Manager) WriteList(w io.Writer, app string) {
	names := m.Names()
	if len(names) == 0 {
		_, _ = fmt.Fprintln(w, "No help topics available.")
		return
	}

	var general, options []string
	for _, name := range names {
		if strings.HasPrefix(name, "option-") {
			options = append(options, strings.TrimPrefix(name, "option-"))
		} else {
			general = append(general, name)
		}
	}

	_, _ = fmt.Fprintln(w, "Available help topics:")
	if len(general) > 0 {
		_, _ = fmt.Fprintln(w, "\nGeneral topics:")
		for _, name := range general {
			_, _ = fmt.Fprintf(w, "  %s\n", name)
		}
	}
	if len(options) > 0 {
		_, _ = fmt.Fprintln(w, "\nOption topics:")
		for _, name := range options {
			_, _ = fmt.Fprintf(w, "  --%s\n", name)
		}
	}
	_, _ = fmt.Fprintf(w, "\nUse '%s help <topic>' to read about a specific topic.\n", app)
}

// Install replaces root's help command with one that also knows the
// manager's topics
func (m *Manager) Install(root *cobra.Command) {
	original := root.HelpFunc()

	help := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.

To see all available help topics:
  ` + root.Name() + ` help topics`,
		ValidArgsFunction: func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range root.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, m.Names()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			switch {
			case len(args) == 0:
				original(root, nil)
				return
			case args[0] == "topics":
				m.WriteList(out, root.Name())
				return
			}

			if t, ok := m.Get(args[0]); ok {
				_, _ = fmt.Fprint(out, m.Render(t))
				return
			}

			if target, _, err := root.Find(args); err == nil && target != nil {
				original(target, args)
				return
			}
			original(root, args)
		},
	}

	for _, c := range root.Commands() {
		if c.Name() == "help" {
			root.RemoveCommand(c)
			break
		}
	}
	root.SetHelpCommand(help)
}

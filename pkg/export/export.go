package export

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arthur-debert/packwise/pkg/errors"
	"github.com/arthur-debert/packwise/pkg/rules"
	"github.com/arthur-debert/packwise/pkg/types"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"
)

// Format is an export encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the supported encodings
var Formats = []Format{FormatJSON, FormatYAML}

// ParseFormat accepts json, yaml or yml, case-insensitively
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", errors.Newf(errors.ErrExportFormat, "unknown export format %q (use json or yaml)", s).
		WithDetail("format", s)
}

// Write encodes cfg to w
func Write(w io.Writer, cfg types.Configuration, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(cfg); err != nil {
			return errors.Wrap(err, errors.ErrExportFormat, "failed to encode configuration as json")
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return errors.Wrap(err, errors.ErrExportFormat, "failed to encode configuration as yaml")
		}
		if err := enc.Close(); err != nil {
			return errors.Wrap(err, errors.ErrExportFormat, "failed to flush yaml output")
		}
		return nil
	}
	return errors.Newf(errors.ErrExportFormat, "unknown export format %q", format)
}

// Pipeline formats a rule's steps the loader-string way:
// "url?limit=10000!img?minimize=true"
func Pipeline(rule types.Rule) string {
	parts := make([]string, 0, len(rule.Steps))
	for _, step := range rule.Steps {
		parts = append(parts, stepString(step))
	}
	return strings.Join(parts, "!")
}

func stepString(step types.Step) string {
	if len(step.Options) == 0 {
		return step.Name
	}
	keys := make([]string, 0, len(step.Options))
	for k := range step.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	opts := make([]string, 0, len(keys))
	for _, k := range keys {
		opts = append(opts, fmt.Sprintf("%s=%v", k, step.Options[k]))
	}
	return step.Name + "?" + strings.Join(opts, "&")
}

// RulesData returns the rule table rows, header first
func RulesData(env types.Env) pterm.TableData {
	data := pterm.TableData{{"Class", "Test", "Strategy", "Pipeline"}}
	for _, rule := range rules.All(env) {
		strategy := string(rule.Strategy)
		if strategy == "" {
			strategy = "-"
		}
		data = append(data, []string{string(rule.Class), rule.Test, strategy, Pipeline(rule)})
	}
	return data
}

// RulesTable renders the selected pipeline of every file class for env
func RulesTable(env types.Env) (string, error) {
	out, err := pterm.DefaultTable.
		WithHasHeader().
		WithData(RulesData(env)).
		Srender()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render rules table")
	}
	return out, nil
}

package compose

import (
	"encoding/json"

	"github.com/arthur-debert/packwise/pkg/types"
)

type position int

const (
	appendPlugin position = iota
	prependPlugin
)

// pluginRule adds one plugin to the chain when its condition holds
type pluginRule struct {
	name    types.PluginName
	when    func(types.Env) bool
	at      position
	options func(types.Env) interface{}
}

func always(types.Env) bool { return true }

// pluginTable is evaluated top to bottom. Prepended plugins go before
// everything collected so far.
var pluginTable = []pluginRule{
	{name: types.PluginNoErrors, when: always},
	{name: types.PluginDefine, when: always, options: defineOptions},
	{name: types.PluginCommonsChunk, when: always, options: func(types.Env) interface{} {
		return types.CommonsChunkOptions{Name: "main"}
	}},
	{name: types.PluginResolver, when: always, options: func(types.Env) interface{} {
		return types.ResolverOptions{
			Descriptors: DescriptorFiles(),
			Fields:      []string{"main"},
			Targets:     []string{"normal", "context"},
		}
	}},
	{name: types.PluginIgnore, when: always, options: func(types.Env) interface{} {
		return types.IgnoreOptions{Pattern: `./node/(window|extend)`}
	}},
	{
		name: types.PluginExtractText,
		when: func(e types.Env) bool { return !e.HotReload },
		options: func(types.Env) interface{} {
			return types.ExtractTextOptions{Filename: StyleFilename, AllChunks: true}
		},
	},
	{
		name: types.PluginOccurrenceOrder,
		when: func(e types.Env) bool { return e.HotReload },
		at:   prependPlugin,
	},
	{name: types.PluginProgress, when: func(e types.Env) bool { return e.Progress }},
	{
		name:    types.PluginUglify,
		when:    types.Env.Production,
		options: func(types.Env) interface{} { return uglifyOptions() },
	},
	{name: types.PluginHotModuleReplacement, when: types.Env.HotModuleReplacement},
}

// DescriptorFiles lists the package descriptor files in resolution priority
func DescriptorFiles() []string {
	return []string{".bower.json", "bower.json", "component.json", "package.json"}
}

// Plugins assembles the ordered plugin chain for env. handler is attached to
// the progress plugin when present.
func Plugins(env types.Env, handler types.ProgressHandler) []types.Plugin {
	var chain []types.Plugin
	for _, rule := range pluginTable {
		if !rule.when(env) {
			continue
		}

		p := types.Plugin{Name: rule.name}
		if rule.options != nil {
			p.Options = rule.options(env)
		}
		if rule.name == types.PluginProgress {
			p.Handler = handler
		}

		if rule.at == prependPlugin {
			chain = append([]types.Plugin{p}, chain...)
		} else {
			chain = append(chain, p)
		}
	}
	return chain
}

func defineOptions(env types.Env) interface{} {
	mode, _ := json.Marshal(env.BuildMode.String())
	return types.DefineOptions{Definitions: map[string]string{
		"NODE_ENV": string(mode),
	}}
}

func uglifyOptions() types.UglifyOptions {
	return types.UglifyOptions{
		Minimize:  true,
		SourceMap: false,
		Comments:  false,
		Compress: types.CompressOptions{
			Warnings:     false,
			DropConsole:  true,
			DropDebugger: true,
		},
	}
}

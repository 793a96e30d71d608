package rules

import (
	"github.com/arthur-debert/packwise/pkg/types"
)

// Match patterns of each rule, in the build engine's regexp syntax
const (
	ScriptTest    = `\.(es6|jsx?)$`
	ScriptExclude = `(node_modules|bower_components|oldreact|html2canvas|paper.js$)`
	StyleTest     = `\.css$`
	SCSSTest      = `\.scss$`
	ImageTest     = `(?i)\.(jpe?g|png|gif|svg)$`
)

// ImageInlineLimit is the size in bytes below which images are inlined as
// data URIs instead of being emitted as files
const ImageInlineLimit = 10000

// Select returns the rule for a file class. Every recognized class yields
// exactly one rule; ok is false for ClassUnknown and anything unrecognized.
func Select(class types.FileClass, hot bool, mode types.BuildMode) (types.Rule, bool) {
	switch class {
	case types.ClassScript:
		return scriptRule(hot), true
	case types.ClassStyle, types.ClassSCSS:
		return styleRule(class, hot, mode), true
	case types.ClassImage:
		return imageRule(), true
	}
	return types.Rule{}, false
}

// All returns the rules of every recognized class for env, in class order
func All(env types.Env) []types.Rule {
	rules := make([]types.Rule, 0, len(types.FileClasses))
	for _, class := range types.FileClasses {
		if r, ok := Select(class, env.HotReload, env.BuildMode); ok {
			rules = append(rules, r)
		}
	}
	return rules
}

func scriptRule(hot bool) types.Rule {
	return types.Rule{
		Class:   types.ClassScript,
		Test:    ScriptTest,
		Exclude: ScriptExclude,
		Steps: []types.Step{
			{Name: "babel", Options: map[string]interface{}{"hot": hot}},
		},
	}
}

func styleRule(class types.FileClass, hot bool, mode types.BuildMode) types.Rule {
	rule := types.Rule{
		Class: class,
		Test:  StyleTest,
	}
	if class == types.ClassSCSS {
		rule.Test = SCSSTest
	}

	if hot {
		rule.Strategy = types.StrategyInline
		rule.Steps = []types.Step{
			{Name: "style"},
			{Name: "css"},
		}
	} else {
		rule.Strategy = types.StrategyExtract
		rule.Steps = []types.Step{
			{Name: "css", Options: map[string]interface{}{
				"minimize": mode == types.BuildModeProduction,
			}},
		}
	}
	rule.Steps = append(rule.Steps, types.Step{Name: "postcss"}, types.Step{Name: "resolve-url"})

	if class == types.ClassSCSS {
		rule.Steps = append(rule.Steps, types.Step{Name: "sass"})
	}
	return rule
}

func imageRule() types.Rule {
	return types.Rule{
		Class: types.ClassImage,
		Test:  ImageTest,
		Steps: []types.Step{
			{Name: "url", Options: map[string]interface{}{"limit": ImageInlineLimit}},
			{Name: "img", Options: map[string]interface{}{"minimize": true}},
		},
	}
}

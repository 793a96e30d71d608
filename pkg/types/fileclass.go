package types

// FileClass is the category of a source file that drives pipeline selection
type FileClass string

const (
	// ClassUnknown marks files no rule applies to; the engine passes them through
	ClassUnknown FileClass = ""

	ClassScript FileClass = "script"
	ClassStyle  FileClass = "css"
	ClassSCSS   FileClass = "scss"
	ClassImage  FileClass = "image"
)

// FileClasses lists the recognized classes in rule order
var FileClasses = []FileClass{ClassScript, ClassStyle, ClassSCSS, ClassImage}

// IsStyle reports whether the class belongs to the style family
func (c FileClass) IsStyle() bool {
	return c == ClassStyle || c == ClassSCSS
}

// StyleStrategy decides where the output of style rules lands
type StyleStrategy string

const (
	// StrategyNone applies to non-style rules
	StrategyNone StyleStrategy = ""

	// StrategyInline injects styles into the running page at runtime
	StrategyInline StyleStrategy = "inline"

	// StrategyExtract collects style output into one static stylesheet
	StrategyExtract StyleStrategy = "extract"
)

// Step is one named transform in a rule's pipeline
type Step struct {
	Name    string                 `json:"name" yaml:"name"`
	Options map[string]interface{} `json:"options,omitempty" yaml:"options,omitempty"`
}

// Rule maps a file class to its ordered transformation pipeline
type Rule struct {
	Class    FileClass     `json:"class" yaml:"class"`
	Test     string        `json:"test" yaml:"test"`
	Exclude  string        `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	Strategy StyleStrategy `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	Steps    []Step        `json:"steps" yaml:"steps"`
}

// StepNames returns the pipeline's step names in order
func (r Rule) StepNames() []string {
	names := make([]string, 0, len(r.Steps))
	for _, s := range r.Steps {
		names = append(names, s.Name)
	}
	return names
}

// Step returns the named step, if the pipeline has it
func (r Rule) Step(name string) (Step, bool) {
	for _, s := range r.Steps {
		if s.Name == name {
			return s, true
		}
	}
	return Step{}, false
}

package rules

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/packwise/pkg/types"
)

var extensionClasses = map[string]types.FileClass{
	".js":   types.ClassScript,
	".jsx":  types.ClassScript,
	".es6":  types.ClassScript,
	".css":  types.ClassStyle,
	".scss": types.ClassSCSS,
	".jpg":  types.ClassImage,
	".jpeg": types.ClassImage,
	".png":  types.ClassImage,
	".gif":  types.ClassImage,
	".svg":  types.ClassImage,
}

// Classify returns the file class of filename, decided by its extension.
// Files without a recognized extension are ClassUnknown.
func Classify(filename string) types.FileClass {
	ext := strings.ToLower(filepath.Ext(filename))
	return extensionClasses[ext]
}

// Extensions returns the extensions recognized for a class, sorted
func Extensions(class types.FileClass) []string {
	var exts []string
	for ext, c := range extensionClasses {
		if c == class {
			exts = append(exts, ext)
		}
	}
	sort.Strings(exts)
	return exts
}

package rules

import (
	"testing"

	"github.com/arthur-debert/packwise/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		filename string
		expected types.FileClass
	}{
		{"app.jsx", types.ClassScript},
		{"lib/util.js", types.ClassScript},
		{"legacy.es6", types.ClassScript},
		{"main.css", types.ClassStyle},
		{"theme/_vars.scss", types.ClassSCSS},
		{"logo.PNG", types.ClassImage},
		{"photo.jpeg", types.ClassImage},
		{"photo.jpg", types.ClassImage},
		{"anim.gif", types.ClassImage},
		{"icon.svg", types.ClassImage},
		{"README.md", types.ClassUnknown},
		{"Makefile", types.ClassUnknown},
		{"archive.css.gz", types.ClassUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.filename))
		})
	}
}

func TestClassifyStyleIsNeverBoth(t *testing.T) {
	assert.Equal(t, types.ClassStyle, Classify("a.css"))
	assert.Equal(t, types.ClassSCSS, Classify("a.scss"))
	assert.NotEqual(t, Classify("a.css"), Classify("a.scss"))
}

func TestExtensions(t *testing.T) {
	assert.Equal(t, []string{".es6", ".js", ".jsx"}, Extensions(types.ClassScript))
	assert.Equal(t, []string{".gif", ".jpeg", ".jpg", ".png", ".svg"}, Extensions(types.ClassImage))
	assert.Empty(t, Extensions(types.ClassUnknown))
}

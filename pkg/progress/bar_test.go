package progress

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		message string
		current int
		total   int
		ok      bool
	}{
		{"3/12 building modules", 3, 12, true},
		{"12/12", 12, 12, true},
		{"0/7 building modules 1 active", 0, 7, true},
		{"building modules", 0, 0, false},
		{"", 0, 0, false},
		{"optimize chunk assets", 0, 0, false},
		{"a/b building", 0, 0, false},
		{"3/0 building", 0, 0, false},
		{"building 3/12 modules", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			current, total, ok := ParseCount(tt.message)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.current, current)
			assert.Equal(t, tt.total, total)
		})
	}
}

func TestBar(t *testing.T) {
	t.Run("3 of 12", func(t *testing.T) {
		bar := Bar(3, 12)
		assert.Len(t, bar, Cells)
		assert.Equal(t, strings.Repeat("#", 7)+strings.Repeat(" ", 18), bar)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, strings.Repeat(" ", Cells), Bar(0, 12))
	})

	t.Run("complete", func(t *testing.T) {
		assert.Equal(t, strings.Repeat("#", Cells), Bar(12, 12))
	})

	t.Run("filled cells follow the threshold", func(t *testing.T) {
		for total := 1; total <= 60; total++ {
			for current := 0; current <= total; current++ {
				bar := Bar(current, total)
				for i := 0; i < Cells; i++ {
					filled := float64(current) > float64(i)*float64(total)/Cells
					assert.Equal(t, filled, bar[i] == '#', "%d/%d cell %d", current, total, i)
				}
			}
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, Bar(5, 9), Bar(5, 9))
	})
}

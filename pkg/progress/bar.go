package progress

import (
	"strconv"
	"strings"
)

// Cells is the fixed width of the bar
const Cells = 25

// ParseCount extracts current and total from the leading "current/total"
// word of message. ok is false when the first word carries no count.
func ParseCount(message string) (current, total int, ok bool) {
	word := strings.SplitN(message, " ", 2)[0]
	parts := strings.SplitN(word, "/", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}

	current, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	total, err = strconv.Atoi(parts[1])
	if err != nil || total <= 0 {
		return 0, 0, false
	}
	return current, total, true
}

// Bar draws Cells cells where cell i is filled iff current > i*(total/Cells)
func Bar(current, total int) string {
	step := float64(total) / Cells

	var b strings.Builder
	b.Grow(Cells)
	for i := 0; i < Cells; i++ {
		if float64(current) > float64(i)*step {
			b.WriteByte('#')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

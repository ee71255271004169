// Package indicator renders controller status on the display and status lights.
package indicator

import "strings"

// Width is the number of characters per display line.
const Width = 16

// Fit pads or truncates s to exactly Width characters.
func Fit(s string) string {
	r := []rune(s)
	if len(r) > Width {
		r = r[:Width]
	}
	return string(r) + strings.Repeat(" ", Width-len(r))
}

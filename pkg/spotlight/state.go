package spotlight

import (
	"strings"
)

// State is the open flag of one tab's palette.
type State struct {
	Open bool
}

func (s *State) Toggle() bool {
	s.Open = !s.Open
	return s.Open
}

func (s *State) Close() {
	s.Open = false
}

// HandleShortcut toggles on K pressed together with Meta or Ctrl and reports whether the key
// was consumed. Every other key is left alone.
func (s *State) HandleShortcut(key string, meta, ctrl bool) bool {
	if !strings.EqualFold(key, "k") || !(meta || ctrl) {
		return false
	}
	s.Toggle()
	return true
}

// Select closes the palette, then returns the destination to navigate to.
func (s *State) Select(c *Command) string {
	s.Close()
	return c.Href()
}

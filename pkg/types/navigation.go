package types

import (
	"github.com/a-h/templ"
)

type NavigationItem struct {
	Name     string
	Href     string
	Children []NavigationItem
	Icon     templ.Component
}

// IsActive reports whether the item is the current route. Only an exact path match counts,
// so /app/tickets/new does not highlight Tickets.
func (n NavigationItem) IsActive(path string) bool {
	return n.Href == path
}

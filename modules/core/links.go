package core

import (
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/comfortcurators/portal/pkg/spotlight"
	"github.com/comfortcurators/portal/pkg/types"
)

var MapLink = types.NavigationItem{
	Name: "NavigationLinks.Map",
	Icon: icons.MapTrifold(icons.Props{Size: "20"}),
	Href: "/app/map",
}

var TicketsLink = types.NavigationItem{
	Name: "NavigationLinks.Tickets",
	Icon: icons.Ticket(icons.Props{Size: "20"}),
	Href: "/app/tickets",
}

var BundlesLink = types.NavigationItem{
	Name: "NavigationLinks.Bundles",
	Icon: icons.Stack(icons.Props{Size: "20"}),
	Href: "/app/bundles",
}

var PackagesLink = types.NavigationItem{
	Name: "NavigationLinks.Packages",
	Icon: icons.Package(icons.Props{Size: "20"}),
	Href: "/app/packages",
}

var SettingsLink = types.NavigationItem{
	Name: "NavigationLinks.Settings",
	Icon: icons.Gear(icons.Props{Size: "20"}),
	Href: "/app/settings",
}

var NavItems = []types.NavigationItem{
	MapLink,
	TicketsLink,
	BundlesLink,
	PackagesLink,
	SettingsLink,
}

// NavigationCommands are the "Go to" palette entries, one per navigation item.
func NavigationCommands() []*spotlight.Command {
	keys := map[string]string{
		MapLink.Href:      "Spotlight.GoToMap",
		TicketsLink.Href:  "Spotlight.GoToTickets",
		BundlesLink.Href:  "Spotlight.GoToBundles",
		PackagesLink.Href: "Spotlight.GoToPackages",
		SettingsLink.Href: "Spotlight.GoToSettings",
	}
	commands := make([]*spotlight.Command, 0, len(NavItems))
	for _, item := range NavItems {
		commands = append(commands, spotlight.NewCommand(
			icons.ArrowRight(icons.Props{Size: "16"}),
			keys[item.Href],
			item.Href,
		))
	}
	return commands
}

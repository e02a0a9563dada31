package spotlight

import (
	"context"
	"io"
	"sort"
	"sync"

	"github.com/a-h/templ"
	"github.com/lithammer/fuzzysearch/fuzzy"

	spotlightui "github.com/comfortcurators/portal/components/spotlight"
	"github.com/comfortcurators/portal/pkg/intl"
)

const (
	GroupNavigation   = "Spotlight.Groups.Navigation"
	GroupQuickActions = "Spotlight.Groups.QuickActions"
)

// Command is a palette entry: a translated label bound to a fixed destination.
type Command struct {
	trKey string
	icon  templ.Component
	href  string
}

func NewCommand(icon templ.Component, trKey, href string) *Command {
	return &Command{trKey: trKey, icon: icon, href: href}
}

func (c *Command) Href() string {
	return c.href
}

func (c *Command) Label(ctx context.Context) string {
	return intl.T(ctx, c.trKey)
}

func (c *Command) Render(ctx context.Context, w io.Writer) error {
	return spotlightui.LinkItem(c.Label(ctx), c.href, c.icon).Render(ctx, w)
}

type group struct {
	trKey    string
	commands []*Command
}

// Group is a search result group with its translated heading.
type Group struct {
	Heading  string
	Commands []*Command
}

// Palette is the static dispatch table of the command palette. Groups keep registration order.
type Palette struct {
	mu     sync.RWMutex
	groups []*group
}

func New() *Palette {
	return &Palette{}
}

func (p *Palette) Add(groupKey string, commands ...*Command) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, g := range p.groups {
		if g.trKey == groupKey {
			g.commands = append(g.commands, commands...)
			return
		}
	}
	p.groups = append(p.groups, &group{trKey: groupKey, commands: commands})
}

// Lookup returns the command navigating to href.
func (p *Palette) Lookup(href string) (*Command, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, g := range p.groups {
		for _, c := range g.commands {
			if c.href == href {
				return c, true
			}
		}
	}
	return nil, false
}

// Find returns the groups with commands whose label fuzzy-matches q, best matches first.
// An empty q matches everything in registration order. Groups without matches are omitted.
func (p *Palette) Find(ctx context.Context, q string) []Group {
	p.mu.RLock()
	defer p.mu.RUnlock()

	result := make([]Group, 0, len(p.groups))
	for _, g := range p.groups {
		matched := find(ctx, g.commands, q)
		if len(matched) == 0 {
			continue
		}
		result = append(result, Group{
			Heading:  intl.T(ctx, g.trKey),
			Commands: matched,
		})
	}
	return result
}

func find(ctx context.Context, commands []*Command, q string) []*Command {
	if q == "" {
		return append([]*Command(nil), commands...)
	}
	words := make([]string, len(commands))
	for i, c := range commands {
		words[i] = c.Label(ctx)
	}
	ranks := fuzzy.RankFindNormalizedFold(q, words)
	sort.Sort(ranks)

	result := make([]*Command, 0, len(ranks))
	for _, rank := range ranks {
		result = append(result, commands[rank.OriginalIndex])
	}
	return result
}

// Results renders the matches of q as grouped palette results.
func (p *Palette) Results(q string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		props := spotlightui.ResultsProps{EmptyText: intl.T(ctx, "Spotlight.NoResults")}
		for _, g := range p.Find(ctx, q) {
			items := make([]templ.Component, 0, len(g.Commands))
			for _, c := range g.Commands {
				items = append(items, c)
			}
			props.Groups = append(props.Groups, spotlightui.GroupProps{
				Heading: g.Heading,
				Items:   items,
			})
		}
		return spotlightui.Results(props).Render(ctx, w)
	})
}

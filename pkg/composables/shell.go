package composables

import (
	"context"

	"github.com/comfortcurators/portal/modules/core/domain/entities/organization"
	"github.com/comfortcurators/portal/pkg/constants"
)

// Shell is what a rendered page knows about its application shell: the tab id of the page and
// the organization selected for it.
type Shell struct {
	TabID       string
	SelectedOrg *organization.Organization
}

func WithShell(ctx context.Context, s Shell) context.Context {
	return context.WithValue(ctx, constants.ShellKey, s)
}

func UseShell(ctx context.Context) (Shell, bool) {
	s, ok := ctx.Value(constants.ShellKey).(Shell)
	return s, ok
}

// UseOrgQuery returns the "org" query value that keeps the current selection across links,
// empty when nothing is selected.
func UseOrgQuery(ctx context.Context) string {
	s, ok := UseShell(ctx)
	if !ok || s.SelectedOrg == nil {
		return ""
	}
	return s.SelectedOrg.ID().String()
}

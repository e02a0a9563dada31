package orgcontext

import (
	"github.com/google/uuid"

	"github.com/comfortcurators/portal/modules/core/domain/entities/identity"
	"github.com/comfortcurators/portal/modules/core/domain/entities/organization"
)

// Context is what the shell needs to know about the signed-in user: the organizations they
// are an active member of and their optional display name.
type Context struct {
	Organizations []*organization.Organization
	DisplayName   *string
}

func New(records []organization.MembershipWithOrg, displayName *string) Context {
	return Context{
		Organizations: organization.Organizations(records),
		DisplayName:   displayName,
	}
}

func (c Context) HasOrganizations() bool {
	return len(c.Organizations) > 0
}

// Selected resolves requested against the list, see organization.ResolveSelection.
func (c Context) Selected(requested uuid.UUID) (*organization.Organization, bool) {
	id, ok := organization.ResolveSelection(c.Organizations, requested)
	if !ok {
		return nil, false
	}
	for _, o := range c.Organizations {
		if o.ID() == id {
			return o, true
		}
	}
	return nil, false
}

// HeaderLabel is the display name, falling back to email.
func (c Context) HeaderLabel(email string) string {
	if c.DisplayName != nil {
		return *c.DisplayName
	}
	return email
}

// MenuLabel is the display name, falling back to generic.
func (c Context) MenuLabel(generic string) string {
	if c.DisplayName != nil {
		return *c.DisplayName
	}
	return generic
}

func (c Context) Initials(email string) string {
	return identity.Initials(c.DisplayName, email)
}

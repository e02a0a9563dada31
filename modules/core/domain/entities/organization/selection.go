package organization

import (
	"github.com/google/uuid"
)

// Organizations drops records without an organization and returns the rest in order.
func Organizations(records []MembershipWithOrg) []*Organization {
	orgs := make([]*Organization, 0, len(records))
	for _, r := range records {
		if r.Org == nil {
			continue
		}
		orgs = append(orgs, r.Org)
	}
	return orgs
}

// ResolveSelection picks the current organization: requested when it is one of orgs, otherwise
// the first element. It reports false only for an empty list.
func ResolveSelection(orgs []*Organization, requested uuid.UUID) (uuid.UUID, bool) {
	if len(orgs) == 0 {
		return uuid.Nil, false
	}
	if requested != uuid.Nil {
		for _, o := range orgs {
			if o.ID() == requested {
				return requested, true
			}
		}
	}
	return orgs[0].ID(), true
}

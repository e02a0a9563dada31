package orgcontext

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/comfortcurators/portal/modules/core/domain/entities/organization"
)

func TestContext_Labels(t *testing.T) {
	t.Parallel()

	name := "Asha Rao"
	named := New(nil, &name)
	require.Equal(t, "Asha Rao", named.HeaderLabel("asha@example.com"))
	require.Equal(t, "Asha Rao", named.MenuLabel("Account"))
	require.Equal(t, "AR", named.Initials("asha@example.com"))

	anonymous := New(nil, nil)
	require.Equal(t, "asha@example.com", anonymous.HeaderLabel("asha@example.com"))
	require.Equal(t, "Account", anonymous.MenuLabel("Account"))
	require.Equal(t, "A", anonymous.Initials("asha@example.com"))
	require.False(t, anonymous.HasOrganizations())
}

func TestContext_Selected(t *testing.T) {
	t.Parallel()

	a := organization.New("Alpha Stays")
	b := organization.New("Beta Homes")
	c := New([]organization.MembershipWithOrg{
		{Org: a},
		{Org: nil},
		{Org: b},
	}, nil)

	require.Len(t, c.Organizations, 2)

	selected, ok := c.Selected(uuid.Nil)
	require.True(t, ok)
	require.Equal(t, a.ID(), selected.ID())

	selected, ok = c.Selected(b.ID())
	require.True(t, ok)
	require.Equal(t, b.ID(), selected.ID())

	_, ok = New(nil, nil).Selected(a.ID())
	require.False(t, ok)
}

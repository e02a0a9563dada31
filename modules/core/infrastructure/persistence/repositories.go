package persistence

import (
	"github.com/comfortcurators/portal/modules/core/domain/entities/identity"
	"github.com/comfortcurators/portal/modules/core/domain/entities/organization"
	"github.com/comfortcurators/portal/modules/core/domain/entities/profile"
	"github.com/comfortcurators/portal/modules/core/domain/entities/session"
)

// Repositories is the set of core repositories of one data backend. It is registered as a
// service so seeds and other modules reach the same instances the core services use.
type Repositories struct {
	Identities    identity.Repository
	Profiles      profile.Repository
	Organizations organization.Repository
	Sessions      session.Repository
}

// NewRepositories returns the PostgreSQL repositories. They resolve the connection from the
// context (composables.UseTx).
func NewRepositories() *Repositories {
	return &Repositories{
		Identities:    NewIdentityRepository(),
		Profiles:      NewProfileRepository(),
		Organizations: NewOrganizationRepository(),
		Sessions:      NewSessionRepository(),
	}
}

// Package seed loads the demo fixture into the configured backend.
package seed

import (
	"context"
	_ "embed"
	"time"

	"github.com/go-faster/errors"
	"gopkg.in/yaml.v3"

	"github.com/comfortcurators/portal/modules/core/domain/entities/identity"
	"github.com/comfortcurators/portal/modules/core/domain/entities/organization"
	"github.com/comfortcurators/portal/modules/core/domain/entities/profile"
	"github.com/comfortcurators/portal/modules/core/infrastructure/persistence"
	"github.com/comfortcurators/portal/pkg/application"
	"github.com/comfortcurators/portal/pkg/composables"
)

//go:embed fixture.yaml
var fixtureYAML []byte

type Fixture struct {
	Users []UserFixture `yaml:"users"`
}

type UserFixture struct {
	Email         string              `yaml:"email"`
	Password      string              `yaml:"password"`
	FullName      string              `yaml:"full_name"`
	Organizations []MembershipFixture `yaml:"organizations"`
}

type MembershipFixture struct {
	Name   string              `yaml:"name"`
	Status organization.Status `yaml:"status"`
}

// ParseFixture decodes and validates a fixture document.
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "decode fixture")
	}
	for _, u := range f.Users {
		if u.Email == "" || u.Password == "" {
			return nil, errors.Errorf("fixture user %q: email and password are required", u.Email)
		}
		for _, m := range u.Organizations {
			if !m.Status.IsValid() {
				return nil, errors.Errorf("fixture user %q: invalid membership status %q", u.Email, m.Status)
			}
		}
	}
	return &f, nil
}

// DemoData seeds the embedded fixture.
func DemoData(ctx context.Context, app application.Application) error {
	f, err := ParseFixture(fixtureYAML)
	if err != nil {
		return err
	}
	return Load(f)(ctx, app)
}

// Load returns a seed function creating every fixture user that does not exist yet together
// with their profile and memberships. Existing users are left untouched.
func Load(f *Fixture) application.SeedFunc {
	return func(ctx context.Context, app application.Application) error {
		repos := app.Service(persistence.Repositories{}).(*persistence.Repositories)
		logger := app.Logger()
		if pool := app.DB(); pool != nil {
			ctx = composables.WithPool(ctx, pool)
		}
		for _, u := range f.Users {
			_, err := repos.Identities.GetByEmail(ctx, u.Email)
			if err == nil {
				logger.WithField("email", u.Email).Info("seed user exists, skipping")
				continue
			}
			if !errors.Is(err, identity.ErrNotFound) {
				return errors.Wrapf(err, "look up %s", u.Email)
			}
			if err := composables.InTx(ctx, func(txCtx context.Context) error {
				return createUser(txCtx, repos, u)
			}); err != nil {
				return errors.Wrapf(err, "seed %s", u.Email)
			}
			logger.WithField("email", u.Email).Info("seeded user")
		}
		return nil
	}
}

func createUser(ctx context.Context, repos *persistence.Repositories, u UserFixture) error {
	ident, err := identity.New(u.Email).SetPassword(u.Password)
	if err != nil {
		return err
	}
	ident, err = repos.Identities.Create(ctx, ident)
	if err != nil {
		return err
	}
	var fullName *string
	if u.FullName != "" {
		fullName = &u.FullName
	}
	if err := repos.Profiles.Save(ctx, profile.New(ident.ID(), fullName)); err != nil {
		return err
	}
	joined := time.Now()
	for i, m := range u.Organizations {
		org, err := repos.Organizations.Create(ctx, organization.New(m.Name))
		if err != nil {
			return err
		}
		if err := repos.Organizations.AddMember(ctx, organization.Membership{
			OrgID:  org.ID(),
			UserID: ident.ID(),
			Status: m.Status,
			// Spread join times so the fixture order is the display order.
			CreatedAt: joined.Add(time.Duration(i) * time.Second),
		}); err != nil {
			return err
		}
	}
	return nil
}

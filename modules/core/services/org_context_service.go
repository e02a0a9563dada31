package services

import (
	"context"

	"github.com/go-faster/errors"
	"golang.org/x/sync/errgroup"

	"github.com/comfortcurators/portal/modules/core/domain/entities/identity"
	"github.com/comfortcurators/portal/modules/core/domain/entities/organization"
	"github.com/comfortcurators/portal/modules/core/domain/entities/profile"
	"github.com/comfortcurators/portal/modules/core/domain/value_objects/orgcontext"
	"github.com/comfortcurators/portal/pkg/composables"
	"github.com/comfortcurators/portal/pkg/metrics"
)

// OrgContextService loads the organizations and display name shown in the application shell.
type OrgContextService struct {
	orgs     organization.Repository
	profiles profile.Repository
}

func NewOrgContextService(orgs organization.Repository, profiles profile.Repository) *OrgContextService {
	return &OrgContextService{
		orgs:     orgs,
		profiles: profiles,
	}
}

// Load runs both reads concurrently. A failed read is logged and contributes an empty value,
// so Load never fails; the shell renders without a switcher or with the email instead.
func (s *OrgContextService) Load(ctx context.Context, u *identity.Identity) orgcontext.Context {
	logger := composables.UseLogger(ctx).WithField("user_id", u.ID())

	var (
		records     []organization.MembershipWithOrg
		displayName *string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := s.orgs.ListMemberships(gctx, u.ID())
		if err != nil {
			metrics.OrgContextDegraded.WithLabelValues("memberships").Inc()
			logger.WithError(err).Warn("failed to load organization memberships")
			return nil
		}
		records = list
		return nil
	})
	g.Go(func() error {
		p, err := s.profiles.GetByUserID(gctx, u.ID())
		if errors.Is(err, profile.ErrNotFound) {
			return nil
		}
		if err != nil {
			metrics.OrgContextDegraded.WithLabelValues("profile").Inc()
			logger.WithError(err).Warn("failed to load profile")
			return nil
		}
		displayName = p.FullName()
		return nil
	})
	_ = g.Wait()

	return orgcontext.New(records, displayName)
}

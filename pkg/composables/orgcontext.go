package composables

import (
	"context"
	"errors"

	"github.com/comfortcurators/portal/modules/core/domain/value_objects/orgcontext"
	"github.com/comfortcurators/portal/pkg/constants"
)

var ErrNoOrgContext = errors.New("no organization context found in context")

func WithOrgContext(ctx context.Context, oc orgcontext.Context) context.Context {
	return context.WithValue(ctx, constants.OrgCtxKey, oc)
}

func UseOrgContext(ctx context.Context) (orgcontext.Context, error) {
	oc, ok := ctx.Value(constants.OrgCtxKey).(orgcontext.Context)
	if !ok {
		return orgcontext.Context{}, ErrNoOrgContext
	}
	return oc, nil
}

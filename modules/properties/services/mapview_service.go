package services

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/comfortcurators/portal/modules/properties/domain/mapview"
	"github.com/comfortcurators/portal/pkg/composables"
	"github.com/comfortcurators/portal/pkg/eventbus"
	"github.com/comfortcurators/portal/pkg/metrics"
	"github.com/comfortcurators/portal/pkg/viewstate"
)

var ErrViewNotFound = errors.New("map view not found")

const mapStateKind = "map"

// NewViewRegistry returns a registry that releases views leaving it and keeps the view state
// gauge in sync.
func NewViewRegistry(ttl time.Duration, opts ...viewstate.Option[*mapview.View]) *viewstate.Registry[*mapview.View] {
	opts = append(opts, viewstate.WithReleaseHook(func(_ string, v *mapview.View) {
		v.Release()
		metrics.ViewStates.WithLabelValues(mapStateKind).Dec()
	}))
	return viewstate.NewRegistry[*mapview.View](ttl, opts...)
}

// MapViewService owns the map views of rendered pages. A view is opened when the map page
// renders and released when the page is torn down or abandoned. A view answers only the identity
// it was opened for.
type MapViewService struct {
	views     *viewstate.Registry[*mapview.View]
	opts      mapview.Options
	publisher eventbus.EventBus
	now       func() time.Time
}

func NewMapViewService(views *viewstate.Registry[*mapview.View], opts mapview.Options, publisher eventbus.EventBus) *MapViewService {
	return &MapViewService{
		views:     views,
		opts:      opts,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *MapViewService) Views() *viewstate.Registry[*mapview.View] {
	return s.views
}

func (s *MapViewService) Options() mapview.Options {
	return s.opts
}

// Open acquires a view for a freshly rendered map scoped to orgID.
func (s *MapViewService) Open(ctx context.Context, orgID uuid.UUID) string {
	metrics.ViewStates.WithLabelValues(mapStateKind).Inc()
	return s.views.Mount(mapview.New(orgID, composables.UseIdentityID(ctx), s.opts))
}

// Get returns the view if it belongs to the caller.
func (s *MapViewService) Get(ctx context.Context, id string) (*mapview.View, error) {
	v, ok := s.views.Get(id)
	if !ok || v.OwnerID() != composables.UseIdentityID(ctx) {
		return nil, ErrViewNotFound
	}
	return v, nil
}

func (s *MapViewService) Release(ctx context.Context, id string) bool {
	if _, err := s.Get(ctx, id); err != nil {
		return false
	}
	return s.views.Unmount(id)
}

func (s *MapViewService) ToggleAddMode(ctx context.Context, id string) (bool, error) {
	var adding bool
	err := s.use(ctx, id, func(v *mapview.View) (err error) {
		adding, err = v.ToggleAddMode()
		return err
	})
	return adding, err
}

func (s *MapViewService) EnableAddMode(ctx context.Context, id string) (bool, error) {
	var adding bool
	err := s.use(ctx, id, func(v *mapview.View) (err error) {
		adding, err = v.EnableAddMode()
		return err
	})
	return adding, err
}

// Click applies a map click. A captured coordinate is logged and published as a
// PinDroppedEvent; a click outside add mode is ignored.
func (s *MapViewService) Click(ctx context.Context, id string, c mapview.Coordinate) (captured, adding bool, err error) {
	var orgID uuid.UUID
	err = s.use(ctx, id, func(v *mapview.View) error {
		var err error
		captured, err = v.HandleClick(c)
		adding = v.Adding()
		orgID = v.OrgID()
		return err
	})
	if err != nil || !captured {
		return captured, adding, err
	}

	event := mapview.PinDroppedEvent{
		ViewID:     id,
		OrgID:      orgID,
		Coordinate: c,
		At:         s.now(),
	}
	if u, err := composables.UseIdentity(ctx); err == nil {
		event.UserID = u.ID()
	}
	composables.UseLogger(ctx).WithFields(logrus.Fields{
		"component": "mapview",
		"view":      id,
		"org_id":    orgID,
		"lng":       c.Lng,
		"lat":       c.Lat,
	}).Info("add property at coordinate")
	s.publisher.Publish(event)
	return captured, adding, nil
}

// LocateSucceeded moves the camera to the device position.
func (s *MapViewService) LocateSucceeded(ctx context.Context, id string, c mapview.Coordinate) (mapview.Camera, error) {
	var cam mapview.Camera
	err := s.use(ctx, id, func(v *mapview.View) (err error) {
		cam, err = v.LocateSucceeded(c)
		return err
	})
	return cam, err
}

// LocateFailed records a geolocation failure. The camera stays where it is.
func (s *MapViewService) LocateFailed(ctx context.Context, id, reason string) (mapview.Camera, error) {
	var cam mapview.Camera
	err := s.use(ctx, id, func(v *mapview.View) error {
		if v.Released() {
			return mapview.ErrReleased
		}
		cam = v.Camera()
		return nil
	})
	if err != nil {
		return cam, err
	}
	composables.UseLogger(ctx).WithFields(logrus.Fields{
		"component": "mapview",
		"view":      id,
		"reason":    reason,
	}).Warn("error getting location")
	return cam, nil
}

func (s *MapViewService) CloseSelection(ctx context.Context, id string) error {
	return s.use(ctx, id, func(v *mapview.View) error {
		return v.CloseDetail()
	})
}

func (s *MapViewService) use(ctx context.Context, id string, fn func(v *mapview.View) error) error {
	owner := composables.UseIdentityID(ctx)
	err := s.views.Use(id, func(v *mapview.View) error {
		if v.OwnerID() != owner {
			return ErrViewNotFound
		}
		return fn(v)
	})
	if errors.Is(err, viewstate.ErrNotFound) || errors.Is(err, mapview.ErrReleased) {
		return ErrViewNotFound
	}
	return err
}

package services

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/comfortcurators/portal/modules/core/domain/entities/identity"
	"github.com/comfortcurators/portal/modules/properties/domain/mapview"
	"github.com/comfortcurators/portal/pkg/composables"
	"github.com/comfortcurators/portal/pkg/eventbus"
	"github.com/comfortcurators/portal/pkg/viewstate"
)

var testOptions = mapview.Options{
	Camera:     mapview.Camera{Center: mapview.Coordinate{Lng: 73.8567, Lat: 18.5204}, Zoom: 10},
	LocateZoom: 14,
}

func newMapViewService(t *testing.T) (*MapViewService, *[]mapview.PinDroppedEvent) {
	t.Helper()
	publisher := eventbus.NewEventPublisher(logrus.New())
	var events []mapview.PinDroppedEvent
	publisher.Subscribe(func(e mapview.PinDroppedEvent) {
		events = append(events, e)
	})
	return NewMapViewService(NewViewRegistry(time.Minute), testOptions, publisher), &events
}

func TestMapViewService_ClickPublishesPin(t *testing.T) {
	svc, events := newMapViewService(t)
	orgID := uuid.New()
	user := identity.New("demo@comfortcurators.in", identity.WithID(uuid.New()))
	ctx := composables.WithIdentity(context.Background(), user)
	id := svc.Open(ctx, orgID)

	captured, adding, err := svc.Click(ctx, id, mapview.Coordinate{Lng: 73.9, Lat: 15.4})
	require.NoError(t, err)
	require.False(t, captured)
	require.False(t, adding)
	require.Empty(t, *events)

	adding, err = svc.ToggleAddMode(ctx, id)
	require.NoError(t, err)
	require.True(t, adding)

	captured, adding, err = svc.Click(ctx, id, mapview.Coordinate{Lng: 73.9, Lat: 15.4})
	require.NoError(t, err)
	require.True(t, captured)
	require.False(t, adding)
	require.Len(t, *events, 1)

	event := (*events)[0]
	require.Equal(t, id, event.ViewID)
	require.Equal(t, orgID, event.OrgID)
	require.Equal(t, user.ID(), event.UserID)
	require.InDelta(t, 73.9, event.Coordinate.Lng, 1e-9)
}

func TestMapViewService_InvalidClickKeepsAddMode(t *testing.T) {
	ctx := context.Background()
	svc, events := newMapViewService(t)
	id := svc.Open(ctx, uuid.Nil)

	_, err := svc.EnableAddMode(ctx, id)
	require.NoError(t, err)

	_, adding, err := svc.Click(ctx, id, mapview.Coordinate{Lng: math.NaN(), Lat: 10})
	require.ErrorIs(t, err, mapview.ErrInvalidCoordinate)
	require.True(t, adding)
	require.Empty(t, *events)
}

func TestMapViewService_Locate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMapViewService(t)
	id := svc.Open(ctx, uuid.Nil)

	cam, err := svc.LocateFailed(ctx, id, "permission denied")
	require.NoError(t, err)
	require.Equal(t, testOptions.Camera, cam)

	cam, err = svc.LocateSucceeded(ctx, id, mapview.Coordinate{Lng: 72.8777, Lat: 19.076})
	require.NoError(t, err)
	require.InDelta(t, 14.0, cam.Zoom, 1e-9)
	require.InDelta(t, 19.076, cam.Center.Lat, 1e-9)

	_, err = svc.LocateSucceeded(ctx, id, mapview.Coordinate{Lng: 200, Lat: 0})
	require.ErrorIs(t, err, mapview.ErrInvalidCoordinate)
}

func TestMapViewService_Release(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMapViewService(t)
	id := svc.Open(ctx, uuid.Nil)
	view, err := svc.Get(ctx, id)
	require.NoError(t, err)

	require.True(t, svc.Release(ctx, id))
	require.False(t, svc.Release(ctx, id))
	require.True(t, view.Released())
	require.Equal(t, 0, svc.Views().Len())

	_, err = svc.ToggleAddMode(ctx, id)
	require.ErrorIs(t, err, ErrViewNotFound)
	require.ErrorIs(t, svc.CloseSelection(ctx, id), ErrViewNotFound)
	_, err = svc.LocateFailed(ctx, id, "timeout")
	require.ErrorIs(t, err, ErrViewNotFound)
}

func TestMapViewService_SweepReleasesIdleViews(t *testing.T) {
	now := time.Now()
	views := NewViewRegistry(time.Minute, viewstateClock(func() time.Time { return now }))
	svc := NewMapViewService(views, testOptions, eventbus.NewEventPublisher(logrus.New()))
	ctx := context.Background()
	id := svc.Open(ctx, uuid.Nil)
	view, _ := views.Get(id)

	now = now.Add(2 * time.Minute)
	require.Equal(t, 1, views.Sweep())
	require.True(t, view.Released())
	require.ErrorIs(t, svc.CloseSelection(ctx, id), ErrViewNotFound)
}

func TestMapViewService_ViewsBelongToTheirOwner(t *testing.T) {
	owner := composables.WithIdentity(context.Background(), identity.New("owner@example.com"))
	other := composables.WithIdentity(context.Background(), identity.New("other@example.com"))
	svc, events := newMapViewService(t)
	id := svc.Open(owner, uuid.New())

	_, err := svc.Get(other, id)
	require.ErrorIs(t, err, ErrViewNotFound)
	_, err = svc.EnableAddMode(other, id)
	require.ErrorIs(t, err, ErrViewNotFound)
	_, err = svc.ToggleAddMode(context.Background(), id)
	require.ErrorIs(t, err, ErrViewNotFound)
	_, _, err = svc.Click(other, id, mapview.Coordinate{Lng: 73.9, Lat: 15.4})
	require.ErrorIs(t, err, ErrViewNotFound)
	_, err = svc.LocateSucceeded(other, id, mapview.Coordinate{Lng: 72.8777, Lat: 19.076})
	require.ErrorIs(t, err, ErrViewNotFound)
	require.ErrorIs(t, svc.CloseSelection(other, id), ErrViewNotFound)
	require.False(t, svc.Release(other, id))
	require.Empty(t, *events)

	adding, err := svc.ToggleAddMode(owner, id)
	require.NoError(t, err)
	require.True(t, adding)
	require.True(t, svc.Release(owner, id))
}

func viewstateClock(now func() time.Time) viewstate.Option[*mapview.View] {
	return viewstate.WithClock[*mapview.View](now)
}

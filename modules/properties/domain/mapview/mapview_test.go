package mapview_test

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/comfortcurators/portal/modules/properties/domain/mapview"
)

var opts = mapview.Options{
	Camera:     mapview.Camera{Center: mapview.Coordinate{Lng: 78.9629, Lat: 20.5937}, Zoom: 5},
	LocateZoom: 14,
}

func TestView_ToggleTwiceIgnoresClicks(t *testing.T) {
	v := mapview.New(uuid.Nil, uuid.Nil, opts)

	adding, err := v.ToggleAddMode()
	require.NoError(t, err)
	require.True(t, adding)
	adding, err = v.ToggleAddMode()
	require.NoError(t, err)
	require.False(t, adding)

	captured, err := v.HandleClick(mapview.Coordinate{Lng: 73.8, Lat: 15.5})
	require.NoError(t, err)
	require.False(t, captured)
}

func TestView_ClickInAddModeCapturesOnce(t *testing.T) {
	v := mapview.New(uuid.Nil, uuid.Nil, opts)
	_, err := v.EnableAddMode()
	require.NoError(t, err)

	captured, err := v.HandleClick(mapview.Coordinate{Lng: 73.8, Lat: 15.5})
	require.NoError(t, err)
	require.True(t, captured)
	require.False(t, v.Adding())

	captured, err = v.HandleClick(mapview.Coordinate{Lng: 73.8, Lat: 15.5})
	require.NoError(t, err)
	require.False(t, captured)
}

func TestView_EnableAddModeIsIdempotent(t *testing.T) {
	v := mapview.New(uuid.Nil, uuid.Nil, opts)
	for range 2 {
		adding, err := v.EnableAddMode()
		require.NoError(t, err)
		require.True(t, adding)
	}
}

func TestView_InvalidClickKeepsAddMode(t *testing.T) {
	v := mapview.New(uuid.Nil, uuid.Nil, opts)
	_, _ = v.EnableAddMode()

	_, err := v.HandleClick(mapview.Coordinate{Lng: 200, Lat: 0})
	require.ErrorIs(t, err, mapview.ErrInvalidCoordinate)
	require.True(t, v.Adding())
}

func TestView_LocateSucceeded(t *testing.T) {
	v := mapview.New(uuid.Nil, uuid.Nil, opts)
	target := mapview.Coordinate{Lng: 72.8777, Lat: 19.076}

	cam, err := v.LocateSucceeded(target)
	require.NoError(t, err)
	require.Equal(t, mapview.Camera{Center: target, Zoom: 14}, cam)
	require.Equal(t, cam, v.Camera())
}

func TestView_LocateRejectsInvalidCoordinate(t *testing.T) {
	v := mapview.New(uuid.Nil, uuid.Nil, opts)

	_, err := v.LocateSucceeded(mapview.Coordinate{Lng: 0, Lat: math.NaN()})
	require.ErrorIs(t, err, mapview.ErrInvalidCoordinate)
	require.Equal(t, opts.Camera, v.Camera())
}

func TestView_DetailClosedByDefault(t *testing.T) {
	v := mapview.New(uuid.Nil, uuid.Nil, opts)
	require.False(t, v.DetailOpen())
	require.NoError(t, v.CloseDetail())
	require.Nil(t, v.Selected())
}

func TestView_ReleasedViewRejectsOperations(t *testing.T) {
	v := mapview.New(uuid.Nil, uuid.Nil, opts)
	v.Release()

	_, err := v.ToggleAddMode()
	require.ErrorIs(t, err, mapview.ErrReleased)
	_, err = v.HandleClick(mapview.Coordinate{})
	require.ErrorIs(t, err, mapview.ErrReleased)
	_, err = v.LocateSucceeded(mapview.Coordinate{})
	require.ErrorIs(t, err, mapview.ErrReleased)
	require.ErrorIs(t, v.CloseDetail(), mapview.ErrReleased)
}

func TestCoordinate_Validate(t *testing.T) {
	tests := []struct {
		name string
		c    mapview.Coordinate
		ok   bool
	}{
		{"origin", mapview.Coordinate{}, true},
		{"bounds", mapview.Coordinate{Lng: -180, Lat: 90}, true},
		{"lng too large", mapview.Coordinate{Lng: 180.1}, false},
		{"lat too small", mapview.Coordinate{Lat: -90.5}, false},
		{"nan", mapview.Coordinate{Lng: math.NaN()}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, mapview.ErrInvalidCoordinate)
			}
		})
	}
}

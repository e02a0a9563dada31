// Package mapview models the interaction state of one rendered map: the add-property mode,
// the camera and the property detail panel.
package mapview

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
)

var (
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrReleased          = errors.New("map view released")
)

type Coordinate struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

func (c Coordinate) Validate() error {
	if math.IsNaN(c.Lng) || math.IsNaN(c.Lat) {
		return fmt.Errorf("%w: not a number", ErrInvalidCoordinate)
	}
	if c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("%w: longitude %v out of [-180, 180]", ErrInvalidCoordinate, c.Lng)
	}
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude %v out of [-90, 90]", ErrInvalidCoordinate, c.Lat)
	}
	return nil
}

type Camera struct {
	Center Coordinate
	Zoom   float64
}

type PropertySummary struct {
	ID      uuid.UUID
	Name    string
	Address string
}

// Options are fixed for the lifetime of a view.
type Options struct {
	Camera     Camera
	LocateZoom float64
}

type View struct {
	orgID      uuid.UUID
	ownerID    uuid.UUID
	adding     bool
	selected   *PropertySummary
	camera     Camera
	locateZoom float64
	released   bool
}

func New(orgID, ownerID uuid.UUID, opts Options) *View {
	return &View{
		orgID:      orgID,
		ownerID:    ownerID,
		camera:     opts.Camera,
		locateZoom: opts.LocateZoom,
	}
}

func (v *View) OrgID() uuid.UUID {
	return v.orgID
}

// OwnerID is the identity the view was rendered for.
func (v *View) OwnerID() uuid.UUID {
	return v.ownerID
}

func (v *View) Adding() bool {
	return v.adding
}

func (v *View) Camera() Camera {
	return v.camera
}

func (v *View) Selected() *PropertySummary {
	return v.selected
}

// DetailOpen reports whether the property detail panel is shown.
func (v *View) DetailOpen() bool {
	return v.selected != nil
}

func (v *View) Released() bool {
	return v.released
}

func (v *View) ToggleAddMode() (bool, error) {
	if v.released {
		return false, ErrReleased
	}
	v.adding = !v.adding
	return v.adding, nil
}

func (v *View) EnableAddMode() (bool, error) {
	if v.released {
		return false, ErrReleased
	}
	v.adding = true
	return v.adding, nil
}

// HandleClick captures c when add mode is on and leaves add mode. Outside add mode the click
// is ignored and captured is false.
func (v *View) HandleClick(c Coordinate) (captured bool, err error) {
	if v.released {
		return false, ErrReleased
	}
	if err := c.Validate(); err != nil {
		return false, err
	}
	if !v.adding {
		return false, nil
	}
	v.adding = false
	return true, nil
}

// LocateSucceeded centers the camera on c at the locate zoom.
func (v *View) LocateSucceeded(c Coordinate) (Camera, error) {
	if v.released {
		return Camera{}, ErrReleased
	}
	if err := c.Validate(); err != nil {
		return v.camera, err
	}
	v.camera = Camera{Center: c, Zoom: v.locateZoom}
	return v.camera, nil
}

func (v *View) CloseDetail() error {
	if v.released {
		return ErrReleased
	}
	v.selected = nil
	return nil
}

// Release ends the view. Every later operation fails with ErrReleased.
func (v *View) Release() {
	v.released = true
	v.adding = false
	v.selected = nil
}

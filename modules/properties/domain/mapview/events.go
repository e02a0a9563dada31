package mapview

import (
	"time"

	"github.com/google/uuid"
)

// PinDroppedEvent is published when a click in add mode captures a coordinate. It is the hand
// off point for property creation.
type PinDroppedEvent struct {
	ViewID     string
	UserID     uuid.UUID
	OrgID      uuid.UUID
	Coordinate Coordinate
	At         time.Time
}

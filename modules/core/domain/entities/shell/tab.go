package shell

import (
	"github.com/google/uuid"

	"github.com/comfortcurators/portal/pkg/spotlight"
)

// TabState is the UI state of one browser tab showing the application shell.
type TabState struct {
	// OwnerID is the identity that rendered the tab. Nobody else may touch it.
	OwnerID       uuid.UUID
	SelectedOrgID uuid.UUID
	Palette       spotlight.State
}

func NewTabState(ownerID, selectedOrgID uuid.UUID) *TabState {
	return &TabState{OwnerID: ownerID, SelectedOrgID: selectedOrgID}
}

// Package handlers reacts to map view events.
package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/comfortcurators/portal/modules/properties/domain/mapview"
	"github.com/comfortcurators/portal/pkg/eventbus"
	"github.com/comfortcurators/portal/pkg/metrics"
)

type PinHandler struct {
	logger *logrus.Logger
}

// RegisterPinHandler counts dropped pins. Property creation will subscribe here as well.
func RegisterPinHandler(publisher eventbus.EventBus, logger *logrus.Logger) *PinHandler {
	h := &PinHandler{logger: logger}
	publisher.Subscribe(h.onPinDropped)
	return h
}

func (h *PinHandler) onPinDropped(event mapview.PinDroppedEvent) {
	metrics.PropertyPins.Inc()
	h.logger.WithFields(logrus.Fields{
		"component": "mapview",
		"user_id":   event.UserID,
		"org_id":    event.OrgID,
	}).Debug("pin dropped")
}

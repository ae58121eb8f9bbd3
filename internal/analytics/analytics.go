// Package analytics forwards cart domain events to structured logs, keeping
// tracking concerns out of the state machine.
package analytics

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"storefront-gateway/internal/cartstore"
)

type Tracker struct {
	log logrus.FieldLogger
}

func NewTracker(log logrus.FieldLogger) *Tracker {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Tracker{log: log}
}

// Track is registered with the cart store manager as an event observer.
func (t *Tracker) Track(sessionID string, event cartstore.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		t.log.WithError(err).Warn("encode analytics event")
		return
	}
	t.log.WithFields(logrus.Fields{
		"session": sessionID,
		"event":   event.EventName(),
		"payload": json.RawMessage(payload),
	}).Info("cart event")
}

package app

import (
	"time"

	"github.com/cicconee/payouts/internal/shared/payouts"
	"github.com/google/uuid"
)

type EventType string

const (
	EventCreated       EventType = payouts.EventTypePaymentRequestCreated
	EventStatusChanged EventType = payouts.EventTypePaymentRequestStatusChanged
	EventDeleted       EventType = payouts.EventTypePaymentRequestDeleted
)

// Event describes one successful mutation of the collection. Request holds
// the record after the change (before it, for deletes).
type Event struct {
	ID             string
	Type           EventType
	Request        PaymentRequest
	PreviousStatus Status
	OccurredAt     time.Time
}

// Notifier receives events after the mutation is visible. Notify must not
// block.
type Notifier interface {
	Notify(Event)
}

type NotifierFunc func(Event)

func (f NotifierFunc) Notify(e Event) { f(e) }

func newEvent(t EventType, pr PaymentRequest, prev Status, at time.Time) Event {
	return Event{
		ID:             uuid.NewString(),
		Type:           t,
		Request:        pr,
		PreviousStatus: prev,
		OccurredAt:     at,
	}
}

func (e Event) Payload() *payouts.PaymentRequestEvtPayload {
	return &payouts.PaymentRequestEvtPayload{
		RequestID:      e.Request.ID,
		ArtistID:       e.Request.ArtistID,
		ArtistName:     e.Request.ArtistName,
		Amount:         e.Request.Amount.String(),
		Method:         e.Request.Method,
		Status:         string(e.Request.Status),
		PreviousStatus: string(e.PreviousStatus),
		Date:           e.Request.Date,
	}
}

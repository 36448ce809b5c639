// Package domain defines the inbound identity webhook contract.
package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidSignature      = errors.New("invalid_signature")
	ErrInvalidPayload        = errors.New("invalid_payload")
	ErrEventAlreadyProcessed = errors.New("event_already_processed")
)

// Headers are the signed-event headers set by the identity provider.
type Headers struct {
	EventID   string
	Timestamp string
	Signature string
}

// Result reports whether the event was recognized and applied.
type Result struct {
	Received bool `json:"received"`
}

type Service interface {
	// Ingest verifies the raw payload, parses the event envelope and
	// applies the matching idempotent datastore mutation.
	Ingest(ctx context.Context, payload []byte, headers Headers) (*Result, error)
}

// IdentityEvent is the processed-event log used for idempotency.
type IdentityEvent struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	ProviderEventID string    `gorm:"type:text;not null;uniqueIndex:ux_identity_events_provider_event_id" json:"provider_event_id"`
	EventType       string    `gorm:"type:text;not null" json:"event_type"`
	Payload         string    `gorm:"type:text;not null" json:"payload"`
	ReceivedAt      time.Time `gorm:"not null" json:"received_at"`
}

func (IdentityEvent) TableName() string { return "identity_events" }

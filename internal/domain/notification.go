package domain

import (
	"time"

	"github.com/google/uuid"
)

type NotificationStatus string

const (
	NotificationPending NotificationStatus = "Pending"
	NotificationSent    NotificationStatus = "Sent"
	NotificationFailed  NotificationStatus = "Failed"
)

// TypeAutomatic marks records created by the initial-notification
// dispatcher, as opposed to notifications an admin composes by hand.
const TypeAutomatic = "Automatic Notification"

// NotificationRecord is the durable trace of one dispatch: what was sent,
// to whom, and with which deep link. One record per dispatched node.
type NotificationRecord struct {
	ID          uuid.UUID          `json:"id" db:"id"`
	Title       string             `json:"title" db:"title"`
	Description string             `json:"description" db:"description"`
	Link        string             `json:"link" db:"link"`
	UserIDs     UUIDArray          `json:"user_ids" db:"user_ids"`
	Status      NotificationStatus `json:"status" db:"status"`
	Type        string             `json:"type" db:"type"`
	Vertical    Vertical           `json:"vertical" db:"vertical"`
	NodeID      uuid.UUID          `json:"node_id" db:"node_id"`
	CreatedBy   uuid.UUID          `json:"created_by" db:"created_by"`
	CreatedAt   time.Time          `json:"created_at" db:"created_at"`
}

// PushJob is the payload handed to the external delivery queue. The queue
// worker owns retries and per-device delivery; this side only enqueues.
type PushJob struct {
	NotificationID uuid.UUID `json:"notification_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Link           string    `json:"link"`
	Tokens         []string  `json:"tokens"`
	Vertical       Vertical  `json:"vertical"`
}

// DispatchResult reports a dispatch back to the admin who triggered it.
type DispatchResult struct {
	NotificationID *uuid.UUID `json:"notification_id,omitempty"`
	AudienceSize   int        `json:"audience_size"`
	TokenCount     int        `json:"token_count"`
	Queued         bool       `json:"queued"`
}

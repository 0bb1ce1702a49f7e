package domain

import (
	"time"

	"github.com/google/uuid"
)

// Subscriber is a mobile-app user of the public-health application. This
// subsystem reads subscribers only; registration lives elsewhere.
type Subscriber struct {
	ID      uuid.UUID  `json:"id" db:"id"`
	Name    string     `json:"name" db:"name"`
	StateID *uuid.UUID `json:"state_id,omitempty" db:"state_id"`
	CadreID *uuid.UUID `json:"cadre_id,omitempty" db:"cadre_id"`
}

// SubscriberFilter is the fan-out eligibility query. Empty slices mean
// "no constraint on that dimension"; both constraints AND together.
type SubscriberFilter struct {
	StateIDs []uuid.UUID
	CadreIDs []uuid.UUID
}

func (f SubscriberFilter) IsEmpty() bool {
	return len(f.StateIDs) == 0 && len(f.CadreIDs) == 0
}

// DeviceToken is one deliverable push endpoint for a subscriber.
type DeviceToken struct {
	ID                uuid.UUID `json:"id" db:"id"`
	UserID            uuid.UUID `json:"user_id" db:"user_id"`
	NotificationToken string    `json:"notification_token" db:"notification_token"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

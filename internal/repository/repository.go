package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Node         NodeRepository
	Subscriber   SubscriberRepository
	DeviceToken  DeviceTokenRepository
	Notification NotificationRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Node:         NewNodeRepository(db),
		Subscriber:   NewSubscriberRepository(db),
		DeviceToken:  NewDeviceTokenRepository(db),
		Notification: NewNotificationRepository(db),
	}
}

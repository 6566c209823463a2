package entity

import (
	"time"

	"github.com/google/uuid"
)

// Disconnect marks a user's channel as gone since DisconnectTimestamp. The
// marker is removed on reconnect, or consumed by the periodic sweep once the
// grace period has passed.
type Disconnect struct {
	UserID              uuid.UUID `gorm:"primaryKey;type:char(36)" json:"userId"`
	DisconnectTimestamp time.Time `json:"disconnectTimestamp"`
}

func (Disconnect) TableName() string {
	return "websocket_disconnects"
}

package repository

import (
	"context"
	"time"

	"AssistHub/internal/modules/assistance/domain/entity"

	"github.com/google/uuid"
)

// CommunicationObjectRepository stores pending assistance messages until they
// are acknowledged or expire.
type CommunicationObjectRepository interface {
	Save(ctx context.Context, object *entity.CommunicationObject) error
	// GetByUserIDOrderByTimestamp returns the user's pending messages ordered
	// by timestamp ascending.
	GetByUserIDOrderByTimestamp(ctx context.Context, userID string) ([]entity.CommunicationObject, error)
	DeleteByMessageID(ctx context.Context, messageID uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID string) error
	DeleteByTimestampBefore(ctx context.Context, before time.Time) (int64, error)
	DeleteAll(ctx context.Context) error
}

// DisconnectRepository stores grace-period markers keyed by user id.
type DisconnectRepository interface {
	Save(ctx context.Context, disconnect *entity.Disconnect) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	GetByTimestampBefore(ctx context.Context, before time.Time) ([]entity.Disconnect, error)
	DeleteAllIn(ctx context.Context, disconnects []entity.Disconnect) error
}

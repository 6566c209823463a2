package persistence

import (
	"context"
	"time"

	"AssistHub/internal/modules/assistance/domain/entity"
	"AssistHub/internal/modules/assistance/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type communicationObjectRepositoryImpl struct {
	db *gorm.DB
}

func NewCommunicationObjectRepository(db *gorm.DB) repository.CommunicationObjectRepository {
	return &communicationObjectRepositoryImpl{db: db}
}

func (r *communicationObjectRepositoryImpl) Save(ctx context.Context, object *entity.CommunicationObject) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(object).Error
}

func (r *communicationObjectRepositoryImpl) GetByUserIDOrderByTimestamp(ctx context.Context, userID string) ([]entity.CommunicationObject, error) {
	var objects []entity.CommunicationObject
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp ASC").
		Find(&objects).Error
	if err != nil {
		return nil, err
	}
	return objects, nil
}

func (r *communicationObjectRepositoryImpl) DeleteByMessageID(ctx context.Context, messageID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("message_id = ?", messageID).Delete(&entity.CommunicationObject{}).Error
}

func (r *communicationObjectRepositoryImpl) DeleteByUserID(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entity.CommunicationObject{}).Error
}

func (r *communicationObjectRepositoryImpl) DeleteByTimestampBefore(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("timestamp < ?", before).Delete(&entity.CommunicationObject{})
	return result.RowsAffected, result.Error
}

func (r *communicationObjectRepositoryImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&entity.CommunicationObject{}).Error
}

type disconnectRepositoryImpl struct {
	db *gorm.DB
}

func NewDisconnectRepository(db *gorm.DB) repository.DisconnectRepository {
	return &disconnectRepositoryImpl{db: db}
}

func (r *disconnectRepositoryImpl) Save(ctx context.Context, disconnect *entity.Disconnect) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(disconnect).Error
}

func (r *disconnectRepositoryImpl) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entity.Disconnect{}).Error
}

func (r *disconnectRepositoryImpl) GetByTimestampBefore(ctx context.Context, before time.Time) ([]entity.Disconnect, error) {
	var disconnects []entity.Disconnect
	err := r.db.WithContext(ctx).Where("disconnect_timestamp < ?", before).Find(&disconnects).Error
	if err != nil {
		return nil, err
	}
	return disconnects, nil
}

func (r *disconnectRepositoryImpl) DeleteAllIn(ctx context.Context, disconnects []entity.Disconnect) error {
	if len(disconnects) == 0 {
		return nil
	}
	userIDs := make([]uuid.UUID, 0, len(disconnects))
	for _, d := range disconnects {
		userIDs = append(userIDs, d.UserID)
	}
	return r.db.WithContext(ctx).Where("user_id IN ?", userIDs).Delete(&entity.Disconnect{}).Error
}

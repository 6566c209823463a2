package persistence

import (
	"context"
	"errors"

	"AssistHub/internal/modules/assistance/domain/entity"
	"AssistHub/internal/modules/assistance/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type assistanceTypeRepositoryImpl struct {
	db *gorm.DB
}

func NewAssistanceTypeRepository(db *gorm.DB) repository.AssistanceTypeRepository {
	return &assistanceTypeRepositoryImpl{db: db}
}

func (r *assistanceTypeRepositoryImpl) GetAll(ctx context.Context) ([]entity.AssistanceType, error) {
	var assistanceTypes []entity.AssistanceType
	if err := r.db.WithContext(ctx).Find(&assistanceTypes).Error; err != nil {
		return nil, err
	}
	return assistanceTypes, nil
}

func (r *assistanceTypeRepositoryImpl) GetByKey(ctx context.Context, key string) (*entity.AssistanceType, error) {
	var assistanceType entity.AssistanceType
	err := r.db.WithContext(ctx).Where("`key` = ?", key).First(&assistanceType).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &assistanceType, nil
}

func (r *assistanceTypeRepositoryImpl) Save(ctx context.Context, assistanceType *entity.AssistanceType) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(assistanceType).Error
}

func (r *assistanceTypeRepositoryImpl) DeleteByKey(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("`key` = ?", key).Delete(&entity.AssistanceType{}).Error
}

func (r *assistanceTypeRepositoryImpl) DeleteByKeysNotIn(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return r.db.WithContext(ctx).Where("1 = 1").Delete(&entity.AssistanceType{}).Error
	}
	return r.db.WithContext(ctx).Where("`key` NOT IN ?", keys).Delete(&entity.AssistanceType{}).Error
}

func (r *assistanceTypeRepositoryImpl) ReplaceAll(ctx context.Context, assistanceTypes []entity.AssistanceType) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&entity.AssistanceType{}).Error; err != nil {
			return err
		}
		if len(assistanceTypes) == 0 {
			return nil
		}
		return tx.Create(&assistanceTypes).Error
	})
}

package repository

import (
	"context"

	"AssistHub/internal/modules/assistance/domain/entity"
)

// AssistanceTypeRepository stores the locally persisted assistance types, i.e.
// those carrying feature requirements.
type AssistanceTypeRepository interface {
	GetAll(ctx context.Context) ([]entity.AssistanceType, error)
	GetByKey(ctx context.Context, key string) (*entity.AssistanceType, error)
	Save(ctx context.Context, assistanceType *entity.AssistanceType) error
	DeleteByKey(ctx context.Context, key string) error
	DeleteByKeysNotIn(ctx context.Context, keys []string) error
	// ReplaceAll clears the stored set and writes the given types in one
	// transaction.
	ReplaceAll(ctx context.Context, assistanceTypes []entity.AssistanceType) error
}

package repository

import (
	"context"

	"AssistHub/internal/modules/user/domain/entity"

	"github.com/google/uuid"
)

type UserRepository interface {
	GetAll(ctx context.Context) ([]entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByActorAccountName(ctx context.Context, actorAccountName string) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.User, error)
	Save(ctx context.Context, user *entity.User) error
	DeleteByActorAccountName(ctx context.Context, actorAccountName string) error
}

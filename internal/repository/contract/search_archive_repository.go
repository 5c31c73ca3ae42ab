package contract

import (
	"context"

	"propscore-webapp-be/internal/entity"
	"propscore-webapp-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SearchArchiveRepository interface {
	Create(ctx context.Context, archive *entity.SearchArchive) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SearchArchive, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SearchArchive, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error
}

package contract

import (
	"context"

	"propscore-webapp-be/internal/entity"
	"propscore-webapp-be/internal/repository/specification"
)

type ContactMessageRepository interface {
	Create(ctx context.Context, message *entity.ContactMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ContactMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

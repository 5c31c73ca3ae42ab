package implementation

import (
	"context"

	"propscore-webapp-be/internal/entity"
	"propscore-webapp-be/internal/mapper"
	"propscore-webapp-be/internal/model"
	"propscore-webapp-be/internal/repository/contract"
	"propscore-webapp-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ContactMessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ArchiveMapper
}

func NewContactMessageRepository(db *gorm.DB) contract.ContactMessageRepository {
	return &ContactMessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewArchiveMapper(),
	}
}

func (r *ContactMessageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ContactMessageRepositoryImpl) Create(ctx context.Context, message *entity.ContactMessage) error {
	m := r.mapper.ContactMessageToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.ContactMessageToEntity(m)
	return nil
}

func (r *ContactMessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ContactMessage, error) {
	var models []*model.ContactMessage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ContactMessage, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ContactMessageToEntity(m)
	}
	return entities, nil
}

func (r *ContactMessageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ContactMessage{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

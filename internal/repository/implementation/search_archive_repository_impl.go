package implementation

import (
	"context"
	"errors"

	"propscore-webapp-be/internal/entity"
	"propscore-webapp-be/internal/mapper"
	"propscore-webapp-be/internal/model"
	"propscore-webapp-be/internal/repository/contract"
	"propscore-webapp-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SearchArchiveRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ArchiveMapper
}

func NewSearchArchiveRepository(db *gorm.DB) contract.SearchArchiveRepository {
	return &SearchArchiveRepositoryImpl{
		db:     db,
		mapper: mapper.NewArchiveMapper(),
	}
}

func (r *SearchArchiveRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SearchArchiveRepositoryImpl) Create(ctx context.Context, archive *entity.SearchArchive) error {
	m := r.mapper.SearchArchiveToModel(archive)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*archive = *r.mapper.SearchArchiveToEntity(m)
	return nil
}

func (r *SearchArchiveRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SearchArchive, error) {
	var m model.SearchArchive
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SearchArchiveToEntity(&m), nil
}

func (r *SearchArchiveRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SearchArchive, error) {
	var models []*model.SearchArchive
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.SearchArchive, len(models))
	for i, m := range models {
		entities[i] = r.mapper.SearchArchiveToEntity(m)
	}
	return entities, nil
}

func (r *SearchArchiveRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.SearchArchive{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SearchArchiveRepositoryImpl) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.SearchArchive{}).Error
}

package implementation

import (
	"context"
	"errors"

	"syncpad-be/internal/entity"
	"syncpad-be/internal/mapper"
	"syncpad-be/internal/model"
	"syncpad-be/internal/repository/contract"
	"syncpad-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MiniNoteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MiniNoteMapper
}

func NewMiniNoteRepository(db *gorm.DB) contract.MiniNoteRepository {
	return &MiniNoteRepositoryImpl{
		db:     db,
		mapper: mapper.NewMiniNoteMapper(),
	}
}

func (r *MiniNoteRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MiniNoteRepositoryImpl) Create(ctx context.Context, note *entity.MiniNote) error {
	m := r.mapper.ToModel(note)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*note = *r.mapper.ToEntity(m)
	return nil
}

func (r *MiniNoteRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.MiniNote{}, id).Error
}

func (r *MiniNoteRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MiniNote, error) {
	var m model.MiniNote
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MiniNoteRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MiniNote, error) {
	var models []*model.MiniNote
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MiniNoteRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.MiniNote{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *MiniNoteRepositoryImpl) MarkRead(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.MiniNote{}).
		Where("id = ?", id).
		Update("read", true).Error
}

package implementation

import (
	"context"
	"errors"
	"time"

	"syncpad-be/internal/entity"
	"syncpad-be/internal/model"
	"syncpad-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StorageUsageRepositoryImpl struct {
	db *gorm.DB
}

func NewStorageUsageRepository(db *gorm.DB) contract.StorageUsageRepository {
	return &StorageUsageRepositoryImpl{db: db}
}

func (r *StorageUsageRepositoryImpl) ComputeForUser(ctx context.Context, userId uuid.UUID) (*entity.StorageUsage, error) {
	var row struct {
		NoteCount  int64
		TotalBytes int64
	}
	err := r.db.WithContext(ctx).Model(&model.Note{}).
		Select("COUNT(*) AS note_count, COALESCE(SUM(LENGTH(content) + LENGTH(title)), 0) AS total_bytes").
		Where("user_id = ?", userId).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &entity.StorageUsage{
		UserId:     userId,
		NoteCount:  row.NoteCount,
		TotalBytes: row.TotalBytes,
		UpdatedAt:  time.Now(),
	}, nil
}

func (r *StorageUsageRepositoryImpl) Upsert(ctx context.Context, usage *entity.StorageUsage) error {
	m := &model.StorageUsage{
		UserId:     usage.UserId,
		NoteCount:  usage.NoteCount,
		TotalBytes: usage.TotalBytes,
		UpdatedAt:  usage.UpdatedAt,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"note_count", "total_bytes", "updated_at"}),
	}).Create(m).Error
}

func (r *StorageUsageRepositoryImpl) DeleteByUserId(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.StorageUsage{}).Error
}

func (r *StorageUsageRepositoryImpl) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.StorageUsage, error) {
	var m model.StorageUsage
	err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity.StorageUsage{
		UserId:     m.UserId,
		NoteCount:  m.NoteCount,
		TotalBytes: m.TotalBytes,
		UpdatedAt:  m.UpdatedAt,
	}, nil
}

func (r *StorageUsageRepositoryImpl) TopByBytes(ctx context.Context, limit int) ([]*entity.StorageUsage, error) {
	var models []*model.StorageUsage
	err := r.db.WithContext(ctx).Order("total_bytes DESC").Limit(limit).Find(&models).Error
	if err != nil {
		return nil, err
	}

	usages := make([]*entity.StorageUsage, len(models))
	for i, m := range models {
		usages[i] = &entity.StorageUsage{
			UserId:     m.UserId,
			NoteCount:  m.NoteCount,
			TotalBytes: m.TotalBytes,
			UpdatedAt:  m.UpdatedAt,
		}
	}
	return usages, nil
}

func (r *StorageUsageRepositoryImpl) TotalBytes(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.StorageUsage{}).
		Select("COALESCE(SUM(total_bytes), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

package repository

import (
	"context"
	"errors"
	"time"

	"catering/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingRepository stores opaque values in the settings table. It backs the
// business-rule store.
type SettingRepository struct {
	DB *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{DB: db}
}

// Get returns nil, nil when the key has never been written.
func (r *SettingRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var s entity.Setting
	err := r.DB.WithContext(ctx).Where("name = ?", key).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(s.Value), nil
}

// Put upserts the whole value.
func (r *SettingRepository) Put(ctx context.Context, key string, value []byte) error {
	s := entity.Setting{Key: key, Value: string(value), UpdatedAt: time.Now()}
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&s).Error
}

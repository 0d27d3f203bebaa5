package repository

import (
	"catering/entity"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

func (r *ReviewRepository) FindAll() ([]entity.Review, error) {
	var rs []entity.Review
	err := r.DB.Preload("Client").Preload("Venue").Find(&rs).Error
	return rs, err
}

func (r *ReviewRepository) FindByID(id uint) (*entity.Review, error) {
	var rev entity.Review
	if err := r.DB.Preload("Client").Preload("Venue").First(&rev, id).Error; err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *ReviewRepository) Create(rev *entity.Review) error {
	return r.DB.Create(rev).Error
}

func (r *ReviewRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.Review{}).Where("id = ?", id).Updates(updates).Error
}

func (r *ReviewRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.Review{}, id).Error
}

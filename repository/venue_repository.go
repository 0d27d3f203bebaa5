package repository

import (
	"catering/entity"

	"gorm.io/gorm"
)

type VenueRepository struct {
	DB *gorm.DB
}

func NewVenueRepository(db *gorm.DB) *VenueRepository {
	return &VenueRepository{DB: db}
}

func (r *VenueRepository) FindAll() ([]entity.Venue, error) {
	var vs []entity.Venue
	err := r.DB.Order("venue_name").Find(&vs).Error
	return vs, err
}

func (r *VenueRepository) FindByID(id uint) (*entity.Venue, error) {
	var v entity.Venue
	if err := r.DB.First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VenueRepository) Create(v *entity.Venue) error {
	return r.DB.Create(v).Error
}

func (r *VenueRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.Venue{}).Where("id = ?", id).Updates(updates).Error
}

func (r *VenueRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.Venue{}, id).Error
}

// CountReviews counts the live reviews that reference the venue.
func (r *VenueRepository) CountReviews(id uint) (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Review{}).Where("venue_id = ?", id).Count(&n).Error
	return n, err
}

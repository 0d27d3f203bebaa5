package repository

import (
	"catering/entity"

	"gorm.io/gorm"
)

type ClientRepository struct {
	DB *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{DB: db}
}

func (r *ClientRepository) FindAll() ([]entity.Client, error) {
	var cs []entity.Client
	err := r.DB.Order("last_name, first_name").Find(&cs).Error
	return cs, err
}

func (r *ClientRepository) FindByID(id uint) (*entity.Client, error) {
	var c entity.Client
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepository) FindByUser(userID uint) ([]entity.Client, error) {
	var cs []entity.Client
	err := r.DB.Where("user_id = ?", userID).Find(&cs).Error
	return cs, err
}

func (r *ClientRepository) Create(c *entity.Client) error {
	return r.DB.Create(c).Error
}

func (r *ClientRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.Client{}).Where("id = ?", id).Updates(updates).Error
}

func (r *ClientRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.Client{}, id).Error
}

// CountReservations counts the live reservations that reference the client.
func (r *ClientRepository) CountReservations(id uint) (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Reservation{}).Where("client_id = ?", id).Count(&n).Error
	return n, err
}

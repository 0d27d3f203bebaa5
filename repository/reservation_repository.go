package repository

import (
	"catering/entity"

	"gorm.io/gorm"
)

type ReservationRepository struct {
	DB *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{DB: db}
}

func (r *ReservationRepository) FindAll() ([]entity.Reservation, error) {
	var rs []entity.Reservation
	err := r.DB.Preload("Client").Find(&rs).Error
	return rs, err
}

// reservations of the clients linked to a user account
func (r *ReservationRepository) FindByUser(userID uint) ([]entity.Reservation, error) {
	var rs []entity.Reservation
	err := r.DB.
		Preload("Client").
		Joins("JOIN clients ON clients.id = reservations.client_id AND clients.deleted_at IS NULL").
		Where("clients.user_id = ?", userID).
		Find(&rs).Error
	return rs, err
}

func (r *ReservationRepository) FindByID(id uint) (*entity.Reservation, error) {
	var res entity.Reservation
	if err := r.DB.Preload("Client").First(&res, id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ReservationRepository) Create(res *entity.Reservation) error {
	return r.DB.Create(res).Error
}

func (r *ReservationRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.Reservation{}).Where("id = ?", id).Updates(updates).Error
}

func (r *ReservationRepository) UpdateStatus(id uint, status string) error {
	return r.DB.Model(&entity.Reservation{}).Where("id = ?", id).Update("status", status).Error
}

// Delete removes the reservation together with its payments.
func (r *ReservationRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("reservation_id = ?", id).Delete(&entity.Payment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Reservation{}, id).Error
	})
}

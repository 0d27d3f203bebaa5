package repository

import (
	"catering/entity"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

// payments with their reservation and client, for name search and
// duplicate detection
func (r *PaymentRepository) FindAll() ([]entity.Payment, error) {
	var ps []entity.Payment
	err := r.DB.
		Preload("Reservation").
		Preload("Reservation.Client").
		Order("payment_date desc").
		Find(&ps).Error
	return ps, err
}

func (r *PaymentRepository) FindByID(id uint) (*entity.Payment, error) {
	var p entity.Payment
	err := r.DB.
		Preload("Reservation").
		Preload("Reservation.Client").
		First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) Create(p *entity.Payment) error {
	return r.DB.Create(p).Error
}

func (r *PaymentRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.Payment{}).Where("id = ?", id).Updates(updates).Error
}

func (r *PaymentRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.Payment{}, id).Error
}

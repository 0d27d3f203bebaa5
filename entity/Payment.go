package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Payment struct {
	gorm.Model
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentDate time.Time       `gorm:"index" json:"paymentDate"`

	ReservationID uint        `json:"reservationId"`
	Reservation   Reservation `json:"-"` // preload when the client name is needed
}

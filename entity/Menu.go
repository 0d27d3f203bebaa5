package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Menu is a catering menu as stored. Optional business fields are nullable so
// that records imported without them can be told apart from real zeros.
type Menu struct {
	gorm.Model
	MenuName    string          `json:"menuName"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`

	Cost         decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"cost"`
	StockLevel   *int                `json:"stockLevel"`
	Category     string              `gorm:"index" json:"category"`
	Seasonal     *bool               `json:"seasonal"`
	Season       string              `json:"season"`
	Popularity   *int                `json:"popularity"`
	ActiveOrders *int                `json:"activeOrders"`

	CreatedByID *uint `json:"createdBy"`
	CreatedBy   *User `json:"-"`

	Reservations []Reservation `json:"-"`
}

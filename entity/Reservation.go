package entity

import (
	"time"

	"gorm.io/gorm"
)

type Reservation struct {
	gorm.Model
	ReservationDate time.Time `gorm:"index" json:"reservationDate"`
	ReservationTime string    `gorm:"size:8" json:"reservationTime"` // HH:MM
	GuestCount      int       `json:"guestCount"`
	Status          string    `json:"status"` // empty = computed from the schedule

	ClientID uint   `json:"clientId"`
	Client   Client `json:"-"`
	MenuID   uint   `json:"menuId"`
	Menu     Menu   `json:"-"`

	Payments []Payment `json:"-"`
}

package entity

import (
	"gorm.io/gorm"
)

type Review struct {
	gorm.Model
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`

	ClientID uint   `json:"clientId"`
	Client   Client `json:"-"`
	VenueID  uint   `json:"venueId"`
	Venue    Venue  `json:"-"`
}

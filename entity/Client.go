package entity

import (
	"gorm.io/gorm"
)

type Client struct {
	gorm.Model
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `gorm:"index" json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`

	// account that owns this client record, when it has one
	UserID *uint `json:"userId"`
	User   *User `json:"-"`

	Reservations []Reservation `json:"-"`
	Reviews      []Review      `json:"-"`
}

func (c Client) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

package entity

import (
	"gorm.io/gorm"
)

type Venue struct {
	gorm.Model
	VenueName   string `json:"venueName"`
	Address     string `json:"address"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity"`

	Reviews []Review `json:"-"`
}

package entity

import "time"

// Setting is a key/value blob. The business rules live under one key and are
// always read and written whole.
type Setting struct {
	Key       string    `gorm:"primaryKey;column:name;size:64" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

package models

import "time"

// Account is the tenant: one marketplace seller.
type Account struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"size:180;not null;uniqueIndex" json:"email"`
	Password string `gorm:"size:100;not null" json:"-"`
	Name     string `gorm:"size:180" json:"name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

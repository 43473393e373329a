package models

import "time"

// Business is an optional narrower ledger scope inside an account,
// e.g. one of the seller's stores.
type Business struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	AccountID uint   `gorm:"index;not null" json:"-"`
	Name      string `gorm:"size:180;not null" json:"name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

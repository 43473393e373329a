package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Debt direction: who owes whom.
const (
	DebtReceivable = "receivable" // counterparty owes us
	DebtPayable    = "payable"    // we owe the counterparty
)

// Advisory label for an entry; should agree with the sign of Amount
// but is not enforced by the store.
const (
	OpIncrease = "increase"
	OpDecrease = "decrease"
)

// LedgerEntry is one row of the counterparty debt ledger. Entries sharing a
// DebtGroupID form one running balance; an entry with DebtGroupID == nil is
// the head of its own group.
type LedgerEntry struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	AccountID uint `gorm:"index;not null" json:"-"`

	// Optional narrower scope (one of the account's stores).
	BusinessID *uint `gorm:"index" json:"business_id"`

	Counterparty string `gorm:"size:180;index" json:"counterparty"`
	DebtType     string `gorm:"size:20;not null;index" json:"debt_type"`

	// Positive = charge (debt grows), negative = payment (debt shrinks).
	Amount        decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	OperationType string          `gorm:"size:20;not null" json:"operation_type"`

	DebtDate time.Time  `gorm:"not null;index" json:"debt_date"`
	DueDate  *time.Time `json:"due_date,omitempty"`
	Note     string     `gorm:"size:255" json:"note,omitempty"`

	DebtGroupID *uint `gorm:"index" json:"debt_group_id"`

	CreatedAt time.Time `json:"created_at"`
}

// GroupID is the id of the group this entry belongs to (its head entry's id).
func (e *LedgerEntry) GroupID() uint {
	if e.DebtGroupID != nil {
		return *e.DebtGroupID
	}
	return e.ID
}

package ledger

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Oshondoi/wb-service-sub000/models"
)

// lockForUpdate serializes writers touching the same key. The sqlite test
// dialect has no row locks and serializes writers itself, so the clause is
// skipped there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func scopeKey(tx *gorm.DB, accountID uint, counterparty, debtType string, businessID *uint) *gorm.DB {
	q := tx.Where("account_id = ? AND debt_type = ? AND counterparty = ?",
		accountID, debtType, counterparty)
	if businessID == nil {
		return q.Where("business_id IS NULL")
	}
	return q.Where("business_id = ?", *businessID)
}

// FindOpenGroup locates the group for (counterparty, debt_type, business)
// whose entries still sum to a non-zero balance, or nil when every group for
// the key is settled. When called inside a write transaction the matching
// rows are locked FOR UPDATE, so concurrent writers on one key line up.
//
// Tie-break: if several groups for the key are open at once, the one with
// the highest head id (most recently opened) wins.
func FindOpenGroup(tx *gorm.DB, accountID uint, counterparty, debtType string, businessID *uint) (*Group, error) {
	entries, err := loadKeyEntries(lockForUpdate(tx), accountID, counterparty, debtType, businessID)
	if err != nil {
		return nil, err
	}
	return pickOpenGroup(GroupEntries(entries)), nil
}

func loadKeyEntries(tx *gorm.DB, accountID uint, counterparty, debtType string, businessID *uint) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	err := scopeKey(tx, accountID, counterparty, debtType, businessID).
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

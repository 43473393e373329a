package ledger

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Oshondoi/wb-service-sub000/models"
)

// ListEntries returns the account's ledger rows, newest first. status may be
// "open" or "closed" to keep only entries whose group is in that state; the
// group state comes from the same derivation the summary uses.
func ListEntries(db *gorm.DB, accountID uint, status string) ([]models.LedgerEntry, error) {
	if status != "" && status != StatusOpen && status != StatusClosed {
		return nil, errValidation("invalid status %q", status)
	}

	var entries []models.LedgerEntry
	err := db.Where("account_id = ?", accountID).
		Order("debt_date DESC, id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, wrapStorage(err)
	}
	if status == "" {
		return entries, nil
	}

	wantOpen := status == StatusOpen
	state := make(map[uint]bool) // head id -> open
	for _, g := range GroupEntries(entries) {
		state[g.HeadID] = g.Open()
	}

	filtered := entries[:0]
	for _, e := range entries {
		if state[e.GroupID()] == wantOpen {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

// UpdateEntryParams carries the editable fields; nil means keep. A
// BusinessID of 0 clears the business scope.
type UpdateEntryParams struct {
	DebtDate      *time.Time
	DueDate       *time.Time
	Note          *string
	Amount        *decimal.Decimal
	OperationType *string
	Counterparty  *string
	DebtType      *string
	BusinessID    *uint
}

// UpdateEntry edits one entry in place. No recomputation of sibling entries
// is triggered. Changing debt_type, counterparty or business_id is rejected
// while the entry shares its group with other entries: such an edit would
// silently desynchronize the group from its key.
func UpdateEntry(db *gorm.DB, accountID, id uint, p UpdateEntryParams) error {
	if p.DebtType != nil && *p.DebtType != models.DebtReceivable && *p.DebtType != models.DebtPayable {
		return errValidation("invalid debt_type %q", *p.DebtType)
	}
	if p.Amount != nil && p.Amount.IsZero() {
		return errValidation("amount must be non-zero")
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var entry models.LedgerEntry
		if err := lockForUpdate(tx).
			Where("account_id = ?", accountID).
			First(&entry, id).Error; err != nil {
			return err
		}

		if changesKey(&entry, p) {
			head := entry.GroupID()
			var members int64
			if err := tx.Model(&models.LedgerEntry{}).
				Where("account_id = ? AND (id = ? OR debt_group_id = ?)", accountID, head, head).
				Count(&members).Error; err != nil {
				return err
			}
			if members > 1 {
				return errValidation("cannot change debt_type, counterparty or business_id of an entry in a multi-entry group")
			}
		}

		updates := map[string]any{}
		if p.DebtDate != nil {
			updates["debt_date"] = *p.DebtDate
		}
		if p.DueDate != nil {
			updates["due_date"] = *p.DueDate
		}
		if p.Note != nil {
			updates["note"] = *p.Note
		}
		if p.Amount != nil {
			updates["amount"] = *p.Amount
		}
		if p.OperationType != nil {
			updates["operation_type"] = *p.OperationType
		}
		if p.Counterparty != nil {
			updates["counterparty"] = strings.TrimSpace(*p.Counterparty)
		}
		if p.DebtType != nil {
			updates["debt_type"] = *p.DebtType
		}
		if p.BusinessID != nil {
			if *p.BusinessID == 0 {
				updates["business_id"] = nil
			} else {
				updates["business_id"] = *p.BusinessID
			}
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&entry).Updates(updates).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return wrapStorage(err)
	}
	return nil
}

func changesKey(entry *models.LedgerEntry, p UpdateEntryParams) bool {
	if p.DebtType != nil && *p.DebtType != entry.DebtType {
		return true
	}
	if p.Counterparty != nil && strings.TrimSpace(*p.Counterparty) != entry.Counterparty {
		return true
	}
	if p.BusinessID != nil {
		cur := businessKey(entry.BusinessID)
		return *p.BusinessID != cur
	}
	return false
}

// DeleteEntry removes one entry. Deleting a group head leaves the members
// behind; the derived group keeps its identity through the old head id.
func DeleteEntry(db *gorm.DB, accountID, id uint) error {
	res := db.Where("account_id = ?", accountID).Delete(&models.LedgerEntry{}, id)
	if res.Error != nil {
		return wrapStorage(res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteEntries removes a batch of entries in one statement, so concurrent
// readers never observe a half-deleted ledger. Returns the number deleted;
// ids the account does not own are skipped, not errors.
func DeleteEntries(db *gorm.DB, accountID uint, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, errValidation("ids must not be empty")
	}
	res := db.Where("account_id = ? AND id IN ?", accountID, ids).
		Delete(&models.LedgerEntry{})
	if res.Error != nil {
		return 0, wrapStorage(res.Error)
	}
	return res.RowsAffected, nil
}

package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Oshondoi/wb-service-sub000/models"
)

type PostEntryParams struct {
	AccountID     uint
	BusinessID    *uint
	Counterparty  string
	DebtType      string
	Amount        decimal.Decimal
	OperationType string
	DebtDate      time.Time
	DueDate       *time.Time
	Note          string
}

type PostEntryResult struct {
	Entries []models.LedgerEntry
	// Split is set when the entry overshot an open group and was persisted
	// as a closing entry plus an opposite-type opening entry.
	Split bool
}

// PostEntry appends a ledger entry for the given key, rolling the debt over
// into the opposite direction when the amount flips the open group's
// balance:
//
//  1. no open group        -> one self-headed entry
//  2. same sign / close-out -> one entry appended to the open group
//  3. sign flip beyond Epsilon -> closing entry that zeroes the old group,
//     plus a fresh opposite-type group for the overshoot
//
// Both rows of a split commit atomically or not at all.
func PostEntry(db *gorm.DB, p PostEntryParams) (*PostEntryResult, error) {
	p.Counterparty = strings.TrimSpace(p.Counterparty)
	if p.DebtType != models.DebtReceivable && p.DebtType != models.DebtPayable {
		return nil, errValidation("invalid debt_type %q", p.DebtType)
	}
	if p.Amount.IsZero() {
		return nil, errValidation("amount must be non-zero")
	}
	if p.DebtDate.IsZero() {
		p.DebtDate = time.Now().UTC()
	}
	if p.OperationType == "" {
		p.OperationType = operationFor(p.Amount)
	}

	var res PostEntryResult
	err := db.Transaction(func(tx *gorm.DB) error {
		open, err := FindOpenGroup(tx, p.AccountID, p.Counterparty, p.DebtType, p.BusinessID)
		if err != nil {
			return err
		}

		if open == nil {
			entry := p.newEntry(p.DebtType, p.Amount, p.OperationType, nil)
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
			res.Entries = []models.LedgerEntry{entry}
			return nil
		}

		balance := open.Balance()
		newBalance := balance.Add(p.Amount)
		head := open.HeadID

		if newBalance.Sign() == balance.Sign() || newBalance.Abs().LessThanOrEqual(Epsilon) {
			entry := p.newEntry(p.DebtType, p.Amount, p.OperationType, &head)
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
			res.Entries = []models.LedgerEntry{entry}
			return nil
		}

		// Overshoot: zero the old group exactly, then open the opposite
		// direction with what is left of the payment.
		closing := p.newEntry(p.DebtType, balance.Neg(), operationFor(balance.Neg()), &head)
		if err := tx.Create(&closing).Error; err != nil {
			return err
		}

		opened := p.newEntry(oppositeType(p.DebtType), newBalance.Abs(), models.OpIncrease, nil)
		if err := tx.Create(&opened).Error; err != nil {
			return err
		}

		res.Entries = []models.LedgerEntry{closing, opened}
		res.Split = true
		return nil
	})
	if err != nil {
		return nil, wrapStorage(err)
	}
	return &res, nil
}

func (p PostEntryParams) newEntry(debtType string, amount decimal.Decimal, op string, groupID *uint) models.LedgerEntry {
	return models.LedgerEntry{
		AccountID:     p.AccountID,
		BusinessID:    p.BusinessID,
		Counterparty:  p.Counterparty,
		DebtType:      debtType,
		Amount:        amount,
		OperationType: op,
		DebtDate:      p.DebtDate,
		DueDate:       p.DueDate,
		Note:          p.Note,
		DebtGroupID:   groupID,
	}
}

func operationFor(amount decimal.Decimal) string {
	if amount.Sign() < 0 {
		return models.OpDecrease
	}
	return models.OpIncrease
}

func oppositeType(debtType string) string {
	if debtType == models.DebtReceivable {
		return models.DebtPayable
	}
	return models.DebtReceivable
}

package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Oshondoi/wb-service-sub000/models"
)

// DefaultNettingNote marks the paired decrease entries a netting produces.
const DefaultNettingNote = "offset"

type RecalculateParams struct {
	AccountID    uint
	BusinessID   *uint
	Counterparty string
	// Amount to net; nil means the full nettable maximum.
	Amount   *decimal.Decimal
	DebtDate *time.Time
	Note     string
}

type RecalculateResult struct {
	Receivable models.LedgerEntry
	Payable    models.LedgerEntry
	// Amount actually netted off both groups.
	Amount decimal.Decimal
}

// Recalculate offsets the open receivable group against the open payable
// group for one counterparty: both balances shrink by the same amount with
// no cash movement. Requires both sides open with a positive balance; the
// requested amount must not exceed the smaller balance (plus Epsilon slack). The two decrease entries
// commit atomically.
func Recalculate(db *gorm.DB, p RecalculateParams) (*RecalculateResult, error) {
	p.Counterparty = strings.TrimSpace(p.Counterparty)
	if p.Counterparty == "" {
		return nil, errValidation("counterparty is required")
	}
	if p.Note == "" {
		p.Note = DefaultNettingNote
	}
	date := time.Now().UTC()
	if p.DebtDate != nil {
		date = *p.DebtDate
	}

	var res RecalculateResult
	err := db.Transaction(func(tx *gorm.DB) error {
		// Receivable side always locks first so concurrent recalculations
		// cannot deadlock on the two key row sets.
		recv, err := FindOpenGroup(tx, p.AccountID, p.Counterparty, models.DebtReceivable, p.BusinessID)
		if err != nil {
			return err
		}
		pay, err := FindOpenGroup(tx, p.AccountID, p.Counterparty, models.DebtPayable, p.BusinessID)
		if err != nil {
			return err
		}
		if recv == nil || pay == nil {
			return errPrecondition("both debt types required")
		}

		// Netting only shrinks debts. A payment-heavy group carries a
		// negative balance; a decrease entry would move it further from
		// zero, so such groups have nothing to offset.
		recvBalance, payBalance := recv.Balance(), pay.Balance()
		if recvBalance.LessThanOrEqual(Epsilon) || payBalance.LessThanOrEqual(Epsilon) {
			return errPrecondition("nothing to net")
		}

		maxNettable := decimal.Min(recvBalance, payBalance)

		requested := maxNettable
		if p.Amount != nil {
			requested = *p.Amount
		}
		if requested.Sign() <= 0 || requested.GreaterThan(maxNettable.Add(Epsilon)) {
			return errPrecondition("exceeds available maximum")
		}

		recvHead, payHead := recv.HeadID, pay.HeadID
		res.Receivable = nettingEntry(p, models.DebtReceivable, requested, &recvHead, date)
		res.Payable = nettingEntry(p, models.DebtPayable, requested, &payHead, date)

		if err := tx.Create(&res.Receivable).Error; err != nil {
			return err
		}
		if err := tx.Create(&res.Payable).Error; err != nil {
			return err
		}

		res.Amount = requested
		return nil
	})
	if err != nil {
		return nil, wrapStorage(err)
	}
	return &res, nil
}

func nettingEntry(p RecalculateParams, debtType string, amount decimal.Decimal, groupID *uint, date time.Time) models.LedgerEntry {
	return models.LedgerEntry{
		AccountID:     p.AccountID,
		BusinessID:    p.BusinessID,
		Counterparty:  p.Counterparty,
		DebtType:      debtType,
		Amount:        amount.Neg(),
		OperationType: models.OpDecrease,
		DebtDate:      date,
		Note:          p.Note,
		DebtGroupID:   groupID,
	}
}

package ledger

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Oshondoi/wb-service-sub000/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.LedgerEntry{}, &models.Business{}))
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decp(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func uintp(v uint) *uint { return &v }

// post is a shorthand for PostEntry against the default test key.
func post(t *testing.T, db *gorm.DB, debtType, amount string) *PostEntryResult {
	t.Helper()
	res, err := PostEntry(db, PostEntryParams{
		AccountID:    1,
		Counterparty: "ACME",
		DebtType:     debtType,
		Amount:       dec(amount),
		DebtDate:     date(2024, time.March, 1),
	})
	require.NoError(t, err)
	return res
}

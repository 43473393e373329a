package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Oshondoi/wb-service-sub000/models"
)

func TestPostEntry_FirstEntryOpensGroup(t *testing.T) {
	db := openTestDB(t)

	res := post(t, db, models.DebtReceivable, "100")
	require.Len(t, res.Entries, 1)
	assert.False(t, res.Split)

	e := res.Entries[0]
	assert.Nil(t, e.DebtGroupID)
	assert.True(t, e.Amount.Equal(dec("100")))
	assert.Equal(t, models.OpIncrease, e.OperationType)

	open, err := FindOpenGroup(db, 1, "ACME", models.DebtReceivable, nil)
	require.NoError(t, err)
	require.NotNil(t, open)
	assert.True(t, open.Balance().Equal(dec("100")))
}

func TestPostEntry_PaymentAppendsToOpenGroup(t *testing.T) {
	db := openTestDB(t)

	first := post(t, db, models.DebtReceivable, "100")
	res := post(t, db, models.DebtReceivable, "-40")
	require.Len(t, res.Entries, 1)
	assert.False(t, res.Split)

	e := res.Entries[0]
	require.NotNil(t, e.DebtGroupID)
	assert.Equal(t, first.Entries[0].ID, *e.DebtGroupID)
	assert.Equal(t, models.OpDecrease, e.OperationType)

	open, err := FindOpenGroup(db, 1, "ACME", models.DebtReceivable, nil)
	require.NoError(t, err)
	require.NotNil(t, open)
	assert.True(t, open.Balance().Equal(dec("60")))
}

func TestPostEntry_ExactCloseOut(t *testing.T) {
	db := openTestDB(t)

	head := post(t, db, models.DebtReceivable, "100").Entries[0]
	res := post(t, db, models.DebtReceivable, "-100")
	require.Len(t, res.Entries, 1)
	assert.False(t, res.Split)
	require.NotNil(t, res.Entries[0].DebtGroupID)
	assert.Equal(t, head.ID, *res.Entries[0].DebtGroupID)

	open, err := FindOpenGroup(db, 1, "ACME", models.DebtReceivable, nil)
	require.NoError(t, err)
	assert.Nil(t, open)
}

func TestPostEntry_OvershootSplits(t *testing.T) {
	db := openTestDB(t)

	head := post(t, db, models.DebtReceivable, "100").Entries[0]
	post(t, db, models.DebtReceivable, "-40")

	// 60 - 80 = -20: the payment settles the debt and flips direction
	res := post(t, db, models.DebtReceivable, "-80")
	require.Len(t, res.Entries, 2)
	assert.True(t, res.Split)

	closing, opened := res.Entries[0], res.Entries[1]

	require.NotNil(t, closing.DebtGroupID)
	assert.Equal(t, head.ID, *closing.DebtGroupID)
	assert.Equal(t, models.DebtReceivable, closing.DebtType)
	assert.True(t, closing.Amount.Equal(dec("-60")), "closing entry zeroes the old group exactly")

	assert.Nil(t, opened.DebtGroupID)
	assert.Equal(t, models.DebtPayable, opened.DebtType)
	assert.True(t, opened.Amount.Equal(dec("20")))
	assert.Equal(t, "ACME", opened.Counterparty)

	// old receivable group is settled, the overshoot lives in a payable group
	recv, err := FindOpenGroup(db, 1, "ACME", models.DebtReceivable, nil)
	require.NoError(t, err)
	assert.Nil(t, recv)

	pay, err := FindOpenGroup(db, 1, "ACME", models.DebtPayable, nil)
	require.NoError(t, err)
	require.NotNil(t, pay)
	assert.True(t, pay.Balance().Equal(dec("20")))
}

func TestPostEntry_RolloverConservesBalance(t *testing.T) {
	cases := []struct {
		balance, amount string
		closing, opened string
	}{
		{"100", "-150", "-100", "50"},
		{"37.50", "-40", "-37.50", "2.50"},
		{"0.05", "-10", "-0.05", "9.95"},
	}
	for _, tc := range cases {
		db := openTestDB(t)
		post(t, db, models.DebtReceivable, tc.balance)
		res := post(t, db, models.DebtReceivable, tc.amount)
		require.True(t, res.Split, "balance %s + %s must flip", tc.balance, tc.amount)
		assert.True(t, res.Entries[0].Amount.Equal(dec(tc.closing)))
		assert.True(t, res.Entries[1].Amount.Equal(dec(tc.opened)))
	}
}

func TestPostEntry_ClosedGroupNeverReopens(t *testing.T) {
	db := openTestDB(t)

	head := post(t, db, models.DebtReceivable, "100").Entries[0]
	post(t, db, models.DebtReceivable, "-100")

	// A later entry for the same key starts a brand-new group.
	res := post(t, db, models.DebtReceivable, "50")
	require.Len(t, res.Entries, 1)
	fresh := res.Entries[0]
	assert.Nil(t, fresh.DebtGroupID)
	assert.NotEqual(t, head.ID, fresh.ID)

	open, err := FindOpenGroup(db, 1, "ACME", models.DebtReceivable, nil)
	require.NoError(t, err)
	require.NotNil(t, open)
	assert.Equal(t, fresh.ID, open.HeadID)
	assert.True(t, open.Balance().Equal(dec("50")))
}

func TestPostEntry_KeysAreIndependent(t *testing.T) {
	db := openTestDB(t)

	post(t, db, models.DebtReceivable, "100")

	// different counterparty
	res, err := PostEntry(db, PostEntryParams{
		AccountID:    1,
		Counterparty: "Globex",
		DebtType:     models.DebtReceivable,
		Amount:       dec("-40"),
		DebtDate:     date(2024, time.March, 2),
	})
	require.NoError(t, err)
	assert.Nil(t, res.Entries[0].DebtGroupID)

	// same counterparty, business scope set
	res, err = PostEntry(db, PostEntryParams{
		AccountID:    1,
		BusinessID:   uintp(7),
		Counterparty: "ACME",
		DebtType:     models.DebtReceivable,
		Amount:       dec("-40"),
		DebtDate:     date(2024, time.March, 2),
	})
	require.NoError(t, err)
	assert.Nil(t, res.Entries[0].DebtGroupID)
}

func TestPostEntry_Validation(t *testing.T) {
	db := openTestDB(t)

	_, err := PostEntry(db, PostEntryParams{
		AccountID:    1,
		Counterparty: "ACME",
		DebtType:     "unknown",
		Amount:       dec("10"),
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	for _, dt := range []string{models.DebtReceivable, models.DebtPayable} {
		_, err = PostEntry(db, PostEntryParams{
			AccountID:    1,
			Counterparty: "ACME",
			DebtType:     dt,
			Amount:       dec("0"),
		})
		require.ErrorAs(t, err, &verr, "zero amount must be rejected for %s", dt)
	}

	// nothing persisted
	var count int64
	require.NoError(t, db.Model(&models.LedgerEntry{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPostEntry_TrimsCounterparty(t *testing.T) {
	db := openTestDB(t)

	res, err := PostEntry(db, PostEntryParams{
		AccountID:    1,
		Counterparty: "  ACME  ",
		DebtType:     models.DebtReceivable,
		Amount:       dec("10"),
		DebtDate:     date(2024, time.March, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, "ACME", res.Entries[0].Counterparty)

	// and the trimmed name resolves into the same group
	res2 := post(t, db, models.DebtReceivable, "5")
	require.NotNil(t, res2.Entries[0].DebtGroupID)
	assert.Equal(t, res.Entries[0].ID, *res2.Entries[0].DebtGroupID)
}

func TestPostEntry_KeepsCallerOperationType(t *testing.T) {
	db := openTestDB(t)

	// advisory label stored untouched even when it disagrees with the sign
	res, err := PostEntry(db, PostEntryParams{
		AccountID:     1,
		Counterparty:  "ACME",
		DebtType:      models.DebtReceivable,
		Amount:        dec("10"),
		OperationType: models.OpDecrease,
		DebtDate:      date(2024, time.March, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, models.OpDecrease, res.Entries[0].OperationType)
}

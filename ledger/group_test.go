package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Oshondoi/wb-service-sub000/models"
)

func entry(id uint, groupID *uint, amount string) models.LedgerEntry {
	return models.LedgerEntry{
		ID:           id,
		AccountID:    1,
		Counterparty: "ACME",
		DebtType:     models.DebtReceivable,
		Amount:       dec(amount),
		DebtGroupID:  groupID,
	}
}

func TestGroupEntries_PartitionsByHead(t *testing.T) {
	entries := []models.LedgerEntry{
		entry(1, nil, "100"),
		entry(2, uintp(1), "-40"),
		entry(3, nil, "50"),
		entry(4, uintp(3), "-50"),
	}

	groups := GroupEntries(entries)
	require.Len(t, groups, 2)
	assert.Equal(t, uint(1), groups[0].HeadID)
	assert.Len(t, groups[0].Entries, 2)
	assert.Equal(t, uint(3), groups[1].HeadID)
	assert.Len(t, groups[1].Entries, 2)
}

func TestGroup_DerivedQuantities(t *testing.T) {
	g := &Group{HeadID: 1, Entries: []models.LedgerEntry{
		entry(1, nil, "100"),
		entry(2, uintp(1), "-40"),
		entry(3, uintp(1), "25"),
	}}

	assert.True(t, g.Balance().Equal(dec("85")))
	assert.True(t, g.TotalCharged().Equal(dec("125")))
	assert.True(t, g.TotalPaid().Equal(dec("40")))
	assert.True(t, g.Remainder().Equal(g.Balance()))
	assert.True(t, g.Open())
}

func TestGroup_OpenEpsilon(t *testing.T) {
	cases := []struct {
		balance string
		open    bool
	}{
		{"0", false},
		{"0.01", false},
		{"-0.01", false},
		{"0.02", true},
		{"-0.02", true},
	}
	for _, tc := range cases {
		g := &Group{HeadID: 1, Entries: []models.LedgerEntry{entry(1, nil, tc.balance)}}
		assert.Equal(t, tc.open, g.Open(), "balance %s", tc.balance)
	}
}

func TestGroup_HeadFallsBackWhenHeadDeleted(t *testing.T) {
	// head row 1 deleted, members survive under the old head id
	g := &Group{HeadID: 1, Entries: []models.LedgerEntry{
		entry(3, uintp(1), "-10"),
		entry(2, uintp(1), "30"),
	}}
	require.NotNil(t, g.Head())
	assert.Equal(t, uint(2), g.Head().ID)
}

func TestPickOpenGroup_NewestHeadWins(t *testing.T) {
	// Two open groups for one key: the most recently opened one is picked.
	groups := GroupEntries([]models.LedgerEntry{
		entry(1, nil, "100"),
		entry(5, nil, "30"),
	})
	picked := pickOpenGroup(groups)
	require.NotNil(t, picked)
	assert.Equal(t, uint(5), picked.HeadID)
}

func TestPickOpenGroup_SkipsClosed(t *testing.T) {
	groups := GroupEntries([]models.LedgerEntry{
		entry(1, nil, "100"),
		entry(2, uintp(1), "-100"),
		entry(3, nil, "30"),
	})
	picked := pickOpenGroup(groups)
	require.NotNil(t, picked)
	assert.Equal(t, uint(3), picked.HeadID)

	assert.Nil(t, pickOpenGroup(GroupEntries([]models.LedgerEntry{
		entry(1, nil, "100"),
		entry(2, uintp(1), "-100"),
	})))
}

package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Oshondoi/wb-service-sub000/models"
)

// Epsilon is the open/closed threshold: a group whose balance is within
// 0.01 of zero counts as settled.
var Epsilon = decimal.New(1, -2)

// Group is the derived set of entries sharing one head. It has no row of
// its own; deleting all member entries removes it implicitly.
type Group struct {
	HeadID  uint
	Entries []models.LedgerEntry
}

// Head returns the entry the group is named after, falling back to the
// oldest member when the head row itself was deleted.
func (g *Group) Head() *models.LedgerEntry {
	for i := range g.Entries {
		if g.Entries[i].ID == g.HeadID {
			return &g.Entries[i]
		}
	}
	if len(g.Entries) == 0 {
		return nil
	}
	oldest := &g.Entries[0]
	for i := range g.Entries {
		if g.Entries[i].ID < oldest.ID {
			oldest = &g.Entries[i]
		}
	}
	return oldest
}

// Balance is the running total: positive charges minus payments.
func (g *Group) Balance() decimal.Decimal {
	sum := decimal.Zero
	for i := range g.Entries {
		sum = sum.Add(g.Entries[i].Amount)
	}
	return sum
}

func (g *Group) TotalCharged() decimal.Decimal {
	sum := decimal.Zero
	for i := range g.Entries {
		if g.Entries[i].Amount.Sign() > 0 {
			sum = sum.Add(g.Entries[i].Amount)
		}
	}
	return sum
}

func (g *Group) TotalPaid() decimal.Decimal {
	sum := decimal.Zero
	for i := range g.Entries {
		if g.Entries[i].Amount.Sign() < 0 {
			sum = sum.Add(g.Entries[i].Amount.Abs())
		}
	}
	return sum
}

// Remainder equals Balance by construction; kept separate because reports
// speak in charged/paid terms.
func (g *Group) Remainder() decimal.Decimal {
	return g.TotalCharged().Sub(g.TotalPaid())
}

// Open reports whether the group still carries a balance beyond Epsilon.
func (g *Group) Open() bool {
	return g.Balance().Abs().GreaterThan(Epsilon)
}

// GroupEntries partitions entries into derived groups, keyed by
// debt_group_id (the entry's own id when nil). Result is ordered by head id.
func GroupEntries(entries []models.LedgerEntry) []*Group {
	byHead := make(map[uint]*Group)
	for _, e := range entries {
		head := e.GroupID()
		g, ok := byHead[head]
		if !ok {
			g = &Group{HeadID: head}
			byHead[head] = g
		}
		g.Entries = append(g.Entries, e)
	}

	groups := make([]*Group, 0, len(byHead))
	for _, g := range byHead {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].HeadID < groups[j].HeadID })
	return groups
}

// pickOpenGroup returns the open group with the highest head id. Nothing in
// the store forbids several open groups for one key, so the newest one wins;
// older stragglers stay visible in summaries until settled by hand.
func pickOpenGroup(groups []*Group) *Group {
	var best *Group
	for _, g := range groups {
		if !g.Open() {
			continue
		}
		if best == nil || g.HeadID > best.HeadID {
			best = g
		}
	}
	return best
}

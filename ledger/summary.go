package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Oshondoi/wb-service-sub000/models"
)

const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

var hundred = decimal.NewFromInt(100)

// GroupSummary is one report row: a derived group with its running totals.
type GroupSummary struct {
	GroupID      uint            `json:"group_id"`
	Counterparty string          `json:"counterparty"`
	DebtType     string          `json:"debt_type"`
	BusinessID   *uint           `json:"business_id"`
	TotalCharged decimal.Decimal `json:"total_charged"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	Remainder    decimal.Decimal `json:"remainder"`
	Status       string          `json:"status"`
	PercentPaid  decimal.Decimal `json:"percent_paid"`
	// NettingAvailable is set when the row's key has both a receivable and
	// a payable group open, so an offset can be offered.
	NettingAvailable bool `json:"netting_available"`
}

type summaryKey struct {
	counterparty string
	business     uint // 0 = no business scope
	debtType     string
}

// Summary is the aggregate view reporting clients render. It is computed
// from raw entries in one place; presentation layers must not re-derive
// totals on their own.
type Summary struct {
	Groups []GroupSummary

	bestOpen map[summaryKey]int // index into Groups
}

// Summarize aggregates raw entries into per-group totals. Pure: the same
// entries always produce the same summary. Open groups sort before closed
// ones, then by descending percent paid, then by descending group id.
func Summarize(entries []models.LedgerEntry) *Summary {
	groups := GroupEntries(entries)

	s := &Summary{
		Groups:   make([]GroupSummary, 0, len(groups)),
		bestOpen: make(map[summaryKey]int),
	}

	for _, g := range groups {
		head := g.Head()
		if head == nil {
			continue
		}
		row := GroupSummary{
			GroupID:      g.HeadID,
			Counterparty: head.Counterparty,
			DebtType:     head.DebtType,
			BusinessID:   head.BusinessID,
			TotalCharged: g.TotalCharged(),
			TotalPaid:    g.TotalPaid(),
			Remainder:    g.Remainder(),
			Status:       StatusClosed,
		}
		if g.Open() {
			row.Status = StatusOpen
		}
		row.PercentPaid = percentPaid(row)
		s.Groups = append(s.Groups, row)
	}

	sort.Slice(s.Groups, func(i, j int) bool {
		a, b := s.Groups[i], s.Groups[j]
		if a.Status != b.Status {
			return a.Status == StatusOpen
		}
		if !a.PercentPaid.Equal(b.PercentPaid) {
			return a.PercentPaid.GreaterThan(b.PercentPaid)
		}
		return a.GroupID > b.GroupID
	})

	s.indexBestOpen()
	s.markNettingAvailable()
	return s
}

// indexBestOpen records, per key, the open group with the largest
// remainder (ties go to the newer group).
func (s *Summary) indexBestOpen() {
	for i := range s.Groups {
		row := &s.Groups[i]
		if row.Status != StatusOpen {
			continue
		}
		k := summaryKey{row.Counterparty, businessKey(row.BusinessID), row.DebtType}
		cur, ok := s.bestOpen[k]
		if !ok {
			s.bestOpen[k] = i
			continue
		}
		best := &s.Groups[cur]
		if row.Remainder.GreaterThan(best.Remainder) ||
			(row.Remainder.Equal(best.Remainder) && row.GroupID > best.GroupID) {
			s.bestOpen[k] = i
		}
	}
}

func (s *Summary) markNettingAvailable() {
	for i := range s.Groups {
		row := &s.Groups[i]
		if row.Status == StatusOpen {
			row.NettingAvailable = s.NettingOfferable(row.Counterparty, row.BusinessID)
		}
	}
}

// BestOpen returns the open group with the largest remainder for the key,
// or nil when every group for the key is settled.
func (s *Summary) BestOpen(counterparty string, businessID *uint, debtType string) *GroupSummary {
	i, ok := s.bestOpen[summaryKey{counterparty, businessKey(businessID), debtType}]
	if !ok {
		return nil
	}
	return &s.Groups[i]
}

// NettingOfferable reports whether an offset can be proposed for the key:
// both a receivable and a payable group open with a positive remainder.
func (s *Summary) NettingOfferable(counterparty string, businessID *uint) bool {
	recv := s.BestOpen(counterparty, businessID, models.DebtReceivable)
	pay := s.BestOpen(counterparty, businessID, models.DebtPayable)
	return recv != nil && pay != nil &&
		recv.Remainder.GreaterThan(Epsilon) && pay.Remainder.GreaterThan(Epsilon)
}

func percentPaid(row GroupSummary) decimal.Decimal {
	if row.TotalCharged.Sign() > 0 {
		return row.TotalPaid.Mul(hundred).DivRound(row.TotalCharged, 2)
	}
	if row.Status == StatusClosed {
		return hundred
	}
	return decimal.Zero
}

func businessKey(id *uint) uint {
	if id == nil {
		return 0
	}
	return *id
}

package app

import (
	"cmp"
	"math"
	"slices"

	"github.com/jricardo27/trip-explorer2-sub002/internal/domain"
)

// settleEpsilon is the smallest amount worth moving.
const settleEpsilon = 0.01

type ledgerEntry struct {
	memberID  string
	remaining float64
}

// Settle reduces member balances to a list of transfers by greedily matching
// the largest creditor with the largest debtor. The input is not modified.
func Settle(balances []domain.MemberBalance) []domain.Transfer {
	var creditors, debtors []ledgerEntry
	for _, b := range balances {
		amount := round2(b.Balance)
		switch {
		case amount > settleEpsilon:
			creditors = append(creditors, ledgerEntry{memberID: b.MemberID, remaining: amount})
		case amount < -settleEpsilon:
			debtors = append(debtors, ledgerEntry{memberID: b.MemberID, remaining: -amount})
		}
	}

	byRemainingDesc := func(a, b ledgerEntry) int {
		if c := cmp.Compare(b.remaining, a.remaining); c != 0 {
			return c
		}
		return cmp.Compare(a.memberID, b.memberID)
	}
	slices.SortFunc(creditors, byRemainingDesc)
	slices.SortFunc(debtors, byRemainingDesc)

	transfers := []domain.Transfer{}
	i, j := 0, 0
	for i < len(creditors) && j < len(debtors) {
		creditor, debtor := creditors[i], debtors[j]
		amount := round2(math.Min(creditor.remaining, debtor.remaining))
		if amount > settleEpsilon {
			transfers = append(transfers, domain.Transfer{
				From:   debtor.memberID,
				To:     creditor.memberID,
				Amount: amount,
			})
		}

		creditors[i].remaining = round2(creditor.remaining - amount)
		debtors[j].remaining = round2(debtor.remaining - amount)
		if creditors[i].remaining <= settleEpsilon {
			i++
		}
		if debtors[j].remaining <= settleEpsilon {
			j++
		}
	}
	return transfers
}

// round2 rounds half away from zero to cents.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

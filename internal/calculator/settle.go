package calculator

import (
	"sort"

	"github.com/tripsplit/tripsplit/internal/models"
)

// party is one side of the settlement matching: a person and how much they
// still owe (debtor) or are still owed (creditor). Always positive.
type party struct {
	name   string
	amount float64
}

// SuggestPayments produces a minimal list of pairwise transfers that zeroes
// out the given balances, assuming they conserve money (sum to ~0).
//
// Greedy largest-first matching: creditors and debtors are each sorted
// descending by amount and walked with two cursors, always settling
// min(remaining debt, remaining credit) between the current pair. The plan
// never contains more than creditors+debtors-1 transfers. Output is
// deterministic: ties in the sort keep name order.
func SuggestPayments(balances models.BalanceSheet) []models.Transfer {
	names := make([]string, 0, len(balances))
	for name := range balances {
		names = append(names, name)
	}
	sort.Strings(names)

	var creditors, debtors []party
	for _, name := range names {
		switch balance := balances[name]; {
		case balance > 0:
			creditors = append(creditors, party{name: name, amount: balance})
		case balance < 0:
			debtors = append(debtors, party{name: name, amount: -balance})
		}
	}
	sort.SliceStable(creditors, func(a, b int) bool { return creditors[a].amount > creditors[b].amount })
	sort.SliceStable(debtors, func(a, b int) bool { return debtors[a].amount > debtors[b].amount })

	var transfers []models.Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor, creditor := &debtors[i], &creditors[j]

		// A name on both sides can only come from inconsistent input,
		// since balances are keyed uniquely. Absorb it instead of
		// emitting a self-payment.
		if debtor.name == creditor.name {
			if debtor.amount > creditor.amount {
				j++
			} else {
				i++
			}
			continue
		}

		payment := round2(minFloat(debtor.amount, creditor.amount))
		if payment < centTolerance {
			// Negligible residual; retire the smaller side.
			if debtor.amount <= creditor.amount {
				i++
			} else {
				j++
			}
			continue
		}

		transfers = append(transfers, models.Transfer{
			From:   debtor.name,
			To:     creditor.name,
			Amount: payment,
		})

		debtor.amount = round2(debtor.amount - payment)
		creditor.amount = round2(creditor.amount - payment)

		if debtor.amount == 0 {
			i++
		}
		if creditor.amount == 0 {
			j++
		}
	}
	return transfers
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

package calculator

import (
	"math"

	"github.com/tripsplit/tripsplit/internal/models"
)

// CalculateBalances folds a collection of expense records into net balances
// per person. Input is sanitized first; callers are never trusted to have
// done it themselves.
//
// Folding rules per record:
//   - Custom split: each share is debited from its participant and the full
//     amount credited to the payer.
//   - Equal split over N >= 1 names: amount/N is debited once per listed
//     occurrence (the payer included if listed, with no special-casing) and
//     the full amount credited to the payer.
//   - Equal split with no names: the amount is credited to the payer and
//     nobody is debited. The expense is informational only.
//
// Balances are rounded to cents and anything under a cent in magnitude is
// collapsed to exactly zero, so floating-point noise reads as settled.
func CalculateBalances(raws []models.RawExpense) models.BalanceSheet {
	expenses := SanitizeAll(raws)

	balances := models.BalanceSheet{}
	for _, e := range expenses {
		balances[e.Payer] = 0
		for _, name := range e.Split.People() {
			balances[name] = 0
		}
	}

	for _, e := range expenses {
		switch {
		case e.Split.Kind == models.SplitCustom:
			for _, share := range e.Split.Shares {
				balances[share.Name] -= share.Amount
			}
			balances[e.Payer] += e.Amount

		case len(e.Split.Names) == 0:
			balances[e.Payer] += e.Amount

		default:
			share := e.Amount / float64(len(e.Split.Names))
			for _, name := range e.Split.Names {
				balances[name] -= share
			}
			balances[e.Payer] += e.Amount
		}
	}

	for name, balance := range balances {
		balance = round2(balance)
		if math.Abs(balance) < centTolerance {
			balance = 0
		}
		balances[name] = balance
	}
	return balances
}

// CalculateBalancesCanonical is CalculateBalances for callers that already
// hold canonical expenses. The records are still re-sanitized.
func CalculateBalancesCanonical(expenses []models.Expense) models.BalanceSheet {
	raws := make([]models.RawExpense, len(expenses))
	for i, e := range expenses {
		raws[i] = e.Raw()
	}
	return CalculateBalances(raws)
}

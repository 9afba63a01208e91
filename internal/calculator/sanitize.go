// Package calculator implements the expense-splitting core: record
// sanitization, net balance calculation, and settlement planning.
// Everything here is pure computation; malformed input is coerced or
// dropped, never surfaced as an error.
package calculator

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tripsplit/tripsplit/internal/models"
)

// centTolerance is the threshold below which money differences are noise.
const centTolerance = 0.01

// round2 rounds to cents. Applied at every aggregation boundary so results
// stay stable across long expense chains.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// coerceString renders any JSON-decoded value as a string. Nil becomes
// empty rather than a printed "<nil>".
func coerceString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	default:
		return fmt.Sprint(s)
	}
}

// coerceAmount renders any JSON-decoded value as a money amount.
// Numbers pass through, numeric strings parse, everything else is 0.
func coerceAmount(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// Sanitize normalizes one raw record into canonical form.
//
// Payer is coerced to a trimmed string and amount to a number (0 when
// unparsable). Equal-split name lists are trimmed with blanks dropped;
// duplicates are kept on purpose, matching the division-by-list-length
// semantics of the balance calculator. Custom splits are cleaned the same
// way, then reconciled against the amount:
//
//   - shares summing to zero fall back to an equal split over the names
//   - shares off by more than a cent are rescaled proportionally, rounded
//     to cents, with the rounding remainder folded into the first share
//   - shares already within a cent of the amount are left untouched
//
// A participants field that is neither an array nor an object becomes an
// empty equal split: the expense credits its payer and debits no one.
func Sanitize(raw models.RawExpense) models.Expense {
	e := models.Expense{
		Payer:       strings.TrimSpace(coerceString(raw.Payer)),
		Amount:      coerceAmount(raw.Amount),
		Description: coerceString(raw.Description),
	}

	switch {
	case raw.Participants.IsObject():
		e.Split = sanitizeCustom(raw.Participants.Pairs, e.Amount)
	case raw.Participants.IsList():
		e.Split = sanitizeEqual(raw.Participants.List)
	default:
		e.Split = models.Split{Kind: models.SplitEqual}
	}
	return e
}

// SanitizeAll normalizes a batch of records. With typed input every record
// is representable, so unlike models.DecodeRaw nothing is skipped here.
func SanitizeAll(raws []models.RawExpense) []models.Expense {
	expenses := make([]models.Expense, len(raws))
	for i, raw := range raws {
		expenses[i] = Sanitize(raw)
	}
	return expenses
}

func sanitizeEqual(entries []any) models.Split {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := strings.TrimSpace(coerceString(entry))
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return models.Split{Kind: models.SplitEqual, Names: names}
}

func sanitizeCustom(pairs []models.RawPair, amount float64) models.Split {
	shares := make([]models.Share, 0, len(pairs))
	for _, pair := range pairs {
		name := strings.TrimSpace(pair.Key)
		if name == "" {
			continue
		}
		shares = append(shares, models.Share{Name: name, Amount: coerceAmount(pair.Value)})
	}

	split := models.Split{Kind: models.SplitCustom, Shares: shares}
	total := split.ShareSum()

	switch {
	case total == 0 && len(shares) > 0:
		// Degenerate input: every share is zero. Fall back to an equal
		// split over the listed names.
		per := round2(amount / float64(len(shares)))
		for i := range shares {
			shares[i].Amount = per
		}

	case math.Abs(total-amount) > centTolerance && total > 0:
		// Shares disagree with the amount: rescale proportionally, then
		// fix the rounding remainder on the first entry so the shares sum
		// exactly to the amount.
		factor := amount / total
		var scaledSum float64
		for i := range shares {
			shares[i].Amount = round2(shares[i].Amount * factor)
			scaledSum += shares[i].Amount
		}
		diff := round2(amount - scaledSum)
		if math.Abs(diff) >= centTolerance {
			shares[0].Amount = round2(shares[0].Amount + diff)
		}
	}

	return split
}

package models

// SplitKind discriminates the two participant shapes an expense can carry.
type SplitKind int

const (
	// SplitEqual divides the amount evenly across the listed names.
	SplitEqual SplitKind = iota
	// SplitCustom assigns each name an explicit share of the amount.
	SplitCustom
)

// Share is one participant's assigned portion of a custom split.
type Share struct {
	Name   string
	Amount float64
}

// Split describes how an expense divides across participants.
// Exactly one of Names or Shares is meaningful, selected by Kind.
type Split struct {
	Kind SplitKind

	// Names is the equal-split participant list. Order is preserved and
	// duplicates are kept: a name listed twice counts twice when the
	// amount is divided.
	Names []string

	// Shares is the custom-split assignment in insertion order. Order
	// matters because rounding remainders are folded into the first entry.
	Shares []Share
}

// ShareSum returns the total of all custom shares.
func (s Split) ShareSum() float64 {
	var total float64
	for _, sh := range s.Shares {
		total += sh.Amount
	}
	return total
}

// People returns every name referenced by the split, in listed order.
func (s Split) People() []string {
	if s.Kind == SplitCustom {
		names := make([]string, len(s.Shares))
		for i, sh := range s.Shares {
			names[i] = sh.Name
		}
		return names
	}
	return s.Names
}

// Expense is a sanitized expense record. It is produced by the sanitizer
// and is the only form the balance calculator consumes.
type Expense struct {
	// ID is assigned by storage backends that need a primary key.
	// It is empty for records that only ever lived in memory or a file.
	ID string

	// Payer is the person who fronted the money, trimmed.
	Payer string

	// Amount is the total cost. Unparsable input coerces to 0.
	Amount float64

	// Description is free text and never participates in calculation.
	Description string

	// Split is the resolved participants variant.
	Split Split

	// CreatedAt is the Unix timestamp when the record was stored, if known.
	CreatedAt int64
}

// BalanceSheet maps a person to their net position. Positive means the
// person is owed money, negative means they owe, zero means settled.
// The values always sum to zero within rounding tolerance.
type BalanceSheet map[string]float64

// Transfer is one suggested payment in a settlement plan.
type Transfer struct {
	// From is the debtor making the payment.
	From string `json:"from"`
	// To is the creditor receiving it.
	To string `json:"to"`
	// Amount is strictly positive, rounded to cents.
	Amount float64 `json:"amount"`
}

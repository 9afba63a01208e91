package calculator

import (
	"math"
	"testing"

	"github.com/tripsplit/tripsplit/internal/models"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name         string
		raw          models.RawExpense
		validateFunc func(t *testing.T, e models.Expense)
	}{
		{
			name: "trims payer and participant names, drops blanks",
			raw: models.RawExpense{
				Payer:        "  Alice  ",
				Amount:       30.0,
				Participants: models.NewRawNames(" Bob ", "", "Carol", "   "),
			},
			validateFunc: func(t *testing.T, e models.Expense) {
				if e.Payer != "Alice" {
					t.Errorf("payer = %q, want %q", e.Payer, "Alice")
				}
				if len(e.Split.Names) != 2 || e.Split.Names[0] != "Bob" || e.Split.Names[1] != "Carol" {
					t.Errorf("names = %v, want [Bob Carol]", e.Split.Names)
				}
			},
		},
		{
			name: "coerces non-string payer and string amount",
			raw: models.RawExpense{
				Payer:        42.0,
				Amount:       "12.50",
				Participants: models.NewRawNames("Bob"),
			},
			validateFunc: func(t *testing.T, e models.Expense) {
				if e.Payer != "42" {
					t.Errorf("payer = %q, want %q", e.Payer, "42")
				}
				if e.Amount != 12.5 {
					t.Errorf("amount = %v, want 12.5", e.Amount)
				}
			},
		},
		{
			name: "unparsable and missing amounts become zero",
			raw: models.RawExpense{
				Payer:        "Alice",
				Amount:       "not a number",
				Participants: models.NewRawNames("Bob"),
			},
			validateFunc: func(t *testing.T, e models.Expense) {
				if e.Amount != 0 {
					t.Errorf("amount = %v, want 0", e.Amount)
				}
			},
		},
		{
			name: "equal split keeps duplicate names",
			raw: models.RawExpense{
				Payer:        "Carol",
				Amount:       30.0,
				Participants: models.NewRawNames("Alice", "Alice", "Bob"),
			},
			validateFunc: func(t *testing.T, e models.Expense) {
				if len(e.Split.Names) != 3 {
					t.Errorf("names = %v, want duplicates preserved", e.Split.Names)
				}
			},
		},
		{
			name: "custom shares off from amount are rescaled",
			raw: models.RawExpense{
				Payer:  "Alice",
				Amount: 100.0,
				Participants: models.NewRawObject([]models.RawPair{
					{Key: "Bob", Value: 40.0},
					{Key: "Carol", Value: 40.0},
				}),
			},
			validateFunc: func(t *testing.T, e models.Expense) {
				// 40+40=80, factor 100/80=1.25, so 50 each.
				wantShares(t, e.Split, []models.Share{{Name: "Bob", Amount: 50}, {Name: "Carol", Amount: 50}})
			},
		},
		{
			name: "rescale remainder lands on the first share",
			raw: models.RawExpense{
				Payer:  "Alice",
				Amount: 100.0,
				Participants: models.NewRawObject([]models.RawPair{
					{Key: "A", Value: 1.0},
					{Key: "B", Value: 1.0},
					{Key: "C", Value: 1.0},
				}),
			},
			validateFunc: func(t *testing.T, e models.Expense) {
				// Each scales to 33.33; the 0.01 left over goes to A.
				wantShares(t, e.Split, []models.Share{
					{Name: "A", Amount: 33.34},
					{Name: "B", Amount: 33.33},
					{Name: "C", Amount: 33.33},
				})
			},
		},
		{
			name: "all-zero shares fall back to an equal split",
			raw: models.RawExpense{
				Payer:  "Alice",
				Amount: 40.0,
				Participants: models.NewRawObject([]models.RawPair{
					{Key: "X", Value: 0.0},
					{Key: "Y", Value: 0.0},
				}),
			},
			validateFunc: func(t *testing.T, e models.Expense) {
				wantShares(t, e.Split, []models.Share{{Name: "X", Amount: 20}, {Name: "Y", Amount: 20}})
			},
		},
		{
			name: "shares within a cent of the amount are left untouched",
			raw: models.RawExpense{
				Payer:  "Alice",
				Amount: 10.0,
				Participants: models.NewRawObject([]models.RawPair{
					{Key: "A", Value: 3.333},
					{Key: "B", Value: 6.666},
				}),
			},
			validateFunc: func(t *testing.T, e models.Expense) {
				wantShares(t, e.Split, []models.Share{{Name: "A", Amount: 3.333}, {Name: "B", Amount: 6.666}})
			},
		},
		{
			name: "blank-named shares are dropped before reconciling",
			raw: models.RawExpense{
				Payer:  "Alice",
				Amount: 10.0,
				Participants: models.NewRawObject([]models.RawPair{
					{Key: "  ", Value: 5.0},
					{Key: "Bob", Value: 5.0},
				}),
			},
			validateFunc: func(t *testing.T, e models.Expense) {
				// Only Bob remains; his 5 rescales to the full 10.
				wantShares(t, e.Split, []models.Share{{Name: "Bob", Amount: 10}})
			},
		},
		{
			name: "unrecognized participants shape becomes an empty equal split",
			raw: models.RawExpense{
				Payer:        "Alice",
				Amount:       50.0,
				Participants: models.RawParticipants{},
			},
			validateFunc: func(t *testing.T, e models.Expense) {
				if e.Split.Kind != models.SplitEqual || len(e.Split.Names) != 0 {
					t.Errorf("split = %+v, want empty equal split", e.Split)
				}
			},
		},
		{
			name: "unparsable share values default to zero",
			raw: models.RawExpense{
				Payer:  "Alice",
				Amount: 20.0,
				Participants: models.NewRawObject([]models.RawPair{
					{Key: "Bob", Value: "oops"},
					{Key: "Carol", Value: 20.0},
				}),
			},
			validateFunc: func(t *testing.T, e models.Expense) {
				// Bob's share parses to 0, Carol's 20 already matches the amount.
				wantShares(t, e.Split, []models.Share{{Name: "Bob", Amount: 0}, {Name: "Carol", Amount: 20}})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validateFunc(t, Sanitize(tt.raw))
		})
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	raws := []models.RawExpense{
		{Payer: " Alice ", Amount: 30.0, Participants: models.NewRawNames("Alice", "Bob", "Carol")},
		{Payer: "Alice", Amount: 100.0, Participants: models.NewRawObject([]models.RawPair{
			{Key: "Bob", Value: 40.0},
			{Key: "Carol", Value: 40.0},
		})},
		{Payer: "Dave", Amount: 50.0, Participants: models.NewRawList(nil)},
	}

	once := SanitizeAll(raws)

	reraws := make([]models.RawExpense, len(once))
	for i, e := range once {
		reraws[i] = e.Raw()
	}
	twice := SanitizeAll(reraws)

	if len(once) != len(twice) {
		t.Fatalf("length changed: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		a, b := once[i], twice[i]
		if a.Payer != b.Payer || a.Amount != b.Amount || a.Split.Kind != b.Split.Kind {
			t.Errorf("record %d changed on re-sanitize: %+v vs %+v", i, a, b)
		}
		if a.Split.Kind == models.SplitCustom {
			wantShares(t, b.Split, a.Split.Shares)
		}
	}
}

func wantShares(t *testing.T, split models.Split, want []models.Share) {
	t.Helper()
	if split.Kind != models.SplitCustom {
		t.Fatalf("split kind = %v, want custom", split.Kind)
	}
	if len(split.Shares) != len(want) {
		t.Fatalf("shares = %v, want %v", split.Shares, want)
	}
	for i, share := range split.Shares {
		if share.Name != want[i].Name {
			t.Errorf("share %d name = %q, want %q", i, share.Name, want[i].Name)
		}
		if math.Abs(share.Amount-want[i].Amount) > 0.001 {
			t.Errorf("share %q = %v, want %v", share.Name, share.Amount, want[i].Amount)
		}
	}
}

package calculator

import (
	"math"
	"testing"

	"github.com/tripsplit/tripsplit/internal/models"
)

func TestCalculateBalances(t *testing.T) {
	tests := []struct {
		name string
		raws []models.RawExpense
		want models.BalanceSheet
	}{
		{
			name: "equal split credits payer and debits every participant",
			raws: []models.RawExpense{
				{Payer: "Alice", Amount: 30.0, Participants: models.NewRawNames("Alice", "Bob", "Carol")},
			},
			want: models.BalanceSheet{"Alice": 20, "Bob": -10, "Carol": -10},
		},
		{
			name: "custom shares are reconciled before folding",
			raws: []models.RawExpense{
				{Payer: "Alice", Amount: 100.0, Participants: models.NewRawObject([]models.RawPair{
					{Key: "Bob", Value: 40.0},
					{Key: "Carol", Value: 40.0},
				})},
			},
			want: models.BalanceSheet{"Alice": 100, "Bob": -50, "Carol": -50},
		},
		{
			name: "empty participant list credits the payer only",
			raws: []models.RawExpense{
				{Payer: "Dave", Amount: 50.0, Participants: models.NewRawList(nil)},
			},
			want: models.BalanceSheet{"Dave": 50},
		},
		{
			name: "duplicate names in an equal split are debited once per occurrence",
			raws: []models.RawExpense{
				// Long-standing quirk kept on purpose: the amount divides by
				// the listed count (3), and Alice is debited for each of her
				// two occurrences.
				{Payer: "Carol", Amount: 30.0, Participants: models.NewRawNames("Alice", "Alice", "Bob")},
			},
			want: models.BalanceSheet{"Alice": -20, "Bob": -10, "Carol": 30},
		},
		{
			name: "multiple expenses accumulate",
			raws: []models.RawExpense{
				{Payer: "Alice", Amount: 30.0, Participants: models.NewRawNames("Alice", "Bob", "Carol")},
				{Payer: "Bob", Amount: 30.0, Participants: models.NewRawNames("Alice", "Bob", "Carol")},
			},
			want: models.BalanceSheet{"Alice": 10, "Bob": 10, "Carol": -20},
		},
		{
			name: "sub-cent noise collapses to settled",
			raws: []models.RawExpense{
				{Payer: "Alice", Amount: 0.01, Participants: models.NewRawNames("Bob", "Carol", "Dave")},
			},
			want: models.BalanceSheet{"Alice": 0.01, "Bob": 0, "Carol": 0, "Dave": 0},
		},
		{
			name: "payer appearing in their own split is not special-cased",
			raws: []models.RawExpense{
				{Payer: "Alice", Amount: 20.0, Participants: models.NewRawNames("Alice", "Bob")},
			},
			want: models.BalanceSheet{"Alice": 10, "Bob": -10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateBalances(tt.raws)
			if len(got) != len(tt.want) {
				t.Fatalf("balances = %v, want %v", got, tt.want)
			}
			for name, want := range tt.want {
				if math.Abs(got[name]-want) > 0.001 {
					t.Errorf("balance[%s] = %v, want %v", name, got[name], want)
				}
			}
		})
	}
}

func TestCalculateBalancesConservation(t *testing.T) {
	// Every expense with a non-empty split moves exactly as much money out
	// of the participants as into the payer, so totals cancel.
	collections := [][]models.RawExpense{
		{
			{Payer: "Alice", Amount: 30.0, Participants: models.NewRawNames("Alice", "Bob", "Carol")},
			{Payer: "Bob", Amount: 17.35, Participants: models.NewRawNames("Alice", "Bob")},
		},
		{
			{Payer: "Alice", Amount: 100.0, Participants: models.NewRawObject([]models.RawPair{
				{Key: "Bob", Value: 40.0},
				{Key: "Carol", Value: 40.0},
			})},
			{Payer: "Carol", Amount: 99.99, Participants: models.NewRawNames("Alice", "Bob", "Carol")},
			{Payer: "Bob", Amount: 12.07, Participants: models.NewRawObject([]models.RawPair{
				{Key: "Alice", Value: 1.0},
				{Key: "Carol", Value: 2.0},
			})},
		},
	}

	for _, raws := range collections {
		balances := CalculateBalances(raws)
		var sum float64
		for _, v := range balances {
			sum += v
		}
		if math.Abs(sum) > 0.01*float64(len(raws)) {
			t.Errorf("balances %v sum to %v, want ~0", balances, sum)
		}
	}
}

func TestCalculateBalancesCanonical(t *testing.T) {
	// Already-sanitized records produce the same balances as their raw form.
	raws := []models.RawExpense{
		{Payer: "Alice", Amount: 30.0, Participants: models.NewRawNames("Alice", "Bob", "Carol")},
	}
	fromRaw := CalculateBalances(raws)
	fromCanonical := CalculateBalancesCanonical(SanitizeAll(raws))

	if len(fromRaw) != len(fromCanonical) {
		t.Fatalf("balances differ: %v vs %v", fromRaw, fromCanonical)
	}
	for name, v := range fromRaw {
		if math.Abs(fromCanonical[name]-v) > 0.001 {
			t.Errorf("balance[%s] = %v from canonical, want %v", name, fromCanonical[name], v)
		}
	}
}

func TestCalculateBalancesMalformedInput(t *testing.T) {
	// Garbage fields degrade gracefully instead of failing the batch.
	raws := []models.RawExpense{
		{Payer: nil, Amount: nil, Participants: models.RawParticipants{}},
		{Payer: "Alice", Amount: "abc", Participants: models.NewRawNames("Bob")},
		{Payer: "Alice", Amount: 10.0, Participants: models.NewRawNames("Bob")},
	}

	got := CalculateBalances(raws)
	if math.Abs(got["Alice"]-10) > 0.001 {
		t.Errorf("balance[Alice] = %v, want 10", got["Alice"])
	}
	if math.Abs(got["Bob"]+10) > 0.001 {
		t.Errorf("balance[Bob] = %v, want -10", got["Bob"])
	}
}

package models

import (
	"encoding/json"
	"fmt"
)

// expenseJSON is the wire shape shared by raw and canonical records.
type expenseJSON struct {
	ID          string  `json:"id,omitempty"`
	Payer       string  `json:"payer"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Split       Split   `json:"participants"`
	CreatedAt   int64   `json:"created_at,omitempty"`
}

// MarshalJSON writes a canonical expense in the same shape raw records use,
// so sanitized output can be stored or re-imported as-is.
func (e Expense) MarshalJSON() ([]byte, error) {
	return json.Marshal(expenseJSON{
		ID:          e.ID,
		Payer:       e.Payer,
		Amount:      e.Amount,
		Description: e.Description,
		Split:       e.Split,
		CreatedAt:   e.CreatedAt,
	})
}

// UnmarshalJSON reads a canonical expense. Unlike RawExpense this is strict:
// payer must be a string and shares must be numbers.
func (e *Expense) UnmarshalJSON(data []byte) error {
	var wire expenseJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*e = Expense{
		ID:          wire.ID,
		Payer:       wire.Payer,
		Amount:      wire.Amount,
		Description: wire.Description,
		Split:       wire.Split,
		CreatedAt:   wire.CreatedAt,
	}
	return nil
}

// MarshalJSON writes an equal split as a name array and a custom split as
// an object in share order.
func (s Split) MarshalJSON() ([]byte, error) {
	if s.Kind == SplitCustom {
		pairs := make([]RawPair, len(s.Shares))
		for i, share := range s.Shares {
			pairs[i] = RawPair{Key: share.Name, Value: share.Amount}
		}
		return marshalOrderedObject(pairs)
	}
	if s.Names == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.Names)
}

// UnmarshalJSON reads either split shape into its tagged variant.
func (s *Split) UnmarshalJSON(data []byte) error {
	var raw RawParticipants
	if err := raw.UnmarshalJSON(data); err != nil {
		return err
	}

	switch {
	case raw.IsObject():
		shares := make([]Share, 0, len(raw.Pairs))
		for _, pair := range raw.Pairs {
			amount, ok := pair.Value.(float64)
			if !ok {
				return fmt.Errorf("share %q: expected number, got %T", pair.Key, pair.Value)
			}
			shares = append(shares, Share{Name: pair.Key, Amount: amount})
		}
		*s = Split{Kind: SplitCustom, Shares: shares}
	case raw.IsList():
		names := make([]string, 0, len(raw.List))
		for _, entry := range raw.List {
			name, ok := entry.(string)
			if !ok {
				return fmt.Errorf("participant: expected string, got %T", entry)
			}
			names = append(names, name)
		}
		*s = Split{Kind: SplitEqual, Names: names}
	default:
		*s = Split{Kind: SplitEqual}
	}
	return nil
}

// Raw converts a canonical expense back to the loose form, preserving the
// participants shape and share order. Sanitizing the result reproduces the
// original expense, which is what makes sanitization idempotent.
func (e Expense) Raw() RawExpense {
	raw := RawExpense{
		Payer:       e.Payer,
		Amount:      e.Amount,
		Description: e.Description,
	}
	if e.Split.Kind == SplitCustom {
		pairs := make([]RawPair, len(e.Split.Shares))
		for i, share := range e.Split.Shares {
			pairs[i] = RawPair{Key: share.Name, Value: share.Amount}
		}
		raw.Participants = NewRawObject(pairs)
	} else {
		raw.Participants = NewRawNames(e.Split.Names...)
	}
	return raw
}

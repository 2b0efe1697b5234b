package pocketbook

import (
	"fmt"
	"time"
)

// TxType is a typed string for identifying transaction kinds.
//
// It is a closed enumeration: the four constants below are the only valid
// values, and [ParseTxType] is the only way a foreign string should become a
// TxType.
type TxType string

// Transaction kinds.
const (
	Credit TxType = "credit" // money coming in
	Debit  TxType = "debit"  // money going out
	Lend   TxType = "lend"   // money lent to someone, expected back
	Borrow TxType = "borrow" // money borrowed from someone, to be repaid
)

// ParseTxType parses a string into a TxType.
func ParseTxType(s string) (TxType, error) {
	switch t := TxType(s); t {
	case Credit, Debit, Lend, Borrow:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown transaction type %q", ErrInvalidInput, s)
	}
}

// IsLoan reports whether the type is one of the two loan kinds.
func (t TxType) IsLoan() bool { return t == Lend || t == Borrow }

// Mode is the cash channel a transaction moves money through.
type Mode string

// Cash channels.
const (
	Hand Mode = "hand" // physical cash
	Bank Mode = "bank" // bank account
)

// ParseMode parses a string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case Hand, Bank:
		return m, nil
	default:
		return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, s)
	}
}

// Status is the lifecycle state of a loan transaction. It only transitions
// from open to settled, never back.
type Status string

const (
	// Open is the zero status: credits and debits are always open, loans are
	// open until settled.
	Open Status = ""
	// Settled marks a loan that has been repaid.
	Settled Status = "settled"
)

// Transaction is a single record in the book.
//
// ID and Date are assigned at creation and never change. Credits and debits
// are mutable through [Book.Edit]; loans are immutable except for settlement,
// which records the repayment channel and day.
type Transaction struct {
	ID     string    // opaque unique key, sole lookup handle
	Type   TxType    //
	Amount Money     // positive magnitude, sign is implied by Type
	Mode   Mode      // balance bucket the transaction affects
	Desc   string    // free text
	Tag    string    // category label, meaningful for debits only
	Person string    // counterparty name, meaningful for loans only
	Date   time.Time // creation instant

	ReminderDate Date   // optional follow-up day, for lends
	Status       Status //
	SettleMode   Mode   // channel the settlement went through, set on settle
	SettledOn    Date   // day of settlement, set on settle
}

// Settled reports whether the transaction is a settled loan.
func (t Transaction) Settled() bool { return t.Status == Settled }

// Effect returns the signed balance delta the transaction contributes to its
// Mode bucket when applied. Reverting a transaction applies the negation.
func (t Transaction) Effect() Money {
	switch t.Type {
	case Credit, Borrow:
		return t.Amount
	case Debit, Lend:
		return t.Amount.Neg()
	default:
		panic("unknown transaction type: " + string(t.Type))
	}
}

// SettlementEffect returns the signed balance delta a settlement contributes
// to the settlement bucket: a lend coming back adds money, a borrow being
// repaid removes it. This is a second real cash movement, cumulative with the
// original effect, not a revert of it.
func (t Transaction) SettlementEffect() Money {
	switch t.Type {
	case Lend:
		return t.Amount
	case Borrow:
		return t.Amount.Neg()
	default:
		panic("settlement effect of a non-loan transaction: " + string(t.Type))
	}
}

// Equal reports whether two transactions are identical field by field.
func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID &&
		t.Type == o.Type &&
		t.Amount.Equal(o.Amount) &&
		t.Mode == o.Mode &&
		t.Desc == o.Desc &&
		t.Tag == o.Tag &&
		t.Person == o.Person &&
		t.Date.Equal(o.Date) &&
		t.ReminderDate == o.ReminderDate &&
		t.Status == o.Status &&
		t.SettleMode == o.SettleMode &&
		t.SettledOn == o.SettledOn
}

// MarshalJSON implements the json.Marshaler interface for Transaction.
// Field order is fixed so that the persisted document is canonical.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("type", t.Type)
	w.Append("amount", t.Amount.Decimal())
	w.Append("mode", t.Mode)
	w.Optional("desc", t.Desc)
	w.Optional("tags", t.Tag)
	w.Optional("person", t.Person)
	w.Append("date", t.Date.UTC().Format(time.RFC3339Nano))
	if !t.ReminderDate.IsZero() {
		w.Append("reminderDate", t.ReminderDate)
	}
	w.Optional("status", t.Status)
	w.Optional("settleMode", t.SettleMode)
	if !t.SettledOn.IsZero() {
		w.Append("settledOn", t.SettledOn)
	}
	return w.MarshalJSON()
}

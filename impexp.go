package pocketbook

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// This file handles the import of documents exported from the legacy web app
// (the localStorage value under its "credit_debit_app_v1" key). The legacy
// document is close to the native format but dirtier: amounts may be strings,
// records may lack ids, and settled loans never recorded their settlement
// channel. Fields are fished out with jsonpath instead of strict structs so
// that an export merely decorated with extra keys still imports.

// ImportLegacy reads a legacy browser export and builds a Book from it.
//
// The stored balance cache is trusted as-is: settled loans in legacy data are
// not replayable (no settlement mode was kept), so the cache is the only
// authority the export carries.
func ImportLegacy(r io.Reader) (*Book, error) {
	var doc any
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("could not parse legacy export: %w", err)
	}

	b := NewBook()

	if name, err := jsonpath.Get("$.user.name", doc); err == nil {
		pin, _ := jsonpath.Get("$.user.pin", doc)
		b.user = &User{Name: fmt.Sprint(name), PIN: fmt.Sprint(pin)}
	}

	if hand, err := jsonpath.Get("$.balance.hand", doc); err == nil {
		value, err := legacyDecimal(hand)
		if err != nil {
			return nil, fmt.Errorf("legacy hand balance: %w", err)
		}
		b.balance.Hand = M(value, b.currency)
	}
	if bank, err := jsonpath.Get("$.balance.bank", doc); err == nil {
		value, err := legacyDecimal(bank)
		if err != nil {
			return nil, fmt.Errorf("legacy bank balance: %w", err)
		}
		b.balance.Bank = M(value, b.currency)
	}

	records, err := jsonpath.Get("$.transactions", doc)
	if err != nil {
		return nil, fmt.Errorf("legacy export has no transactions array: %w", err)
	}
	list, ok := records.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: legacy transactions is not an array", ErrInvalidInput)
	}

	fresh := 0
	for i, record := range list {
		tx, generated, err := legacyTransaction(record, b.currency)
		if err != nil {
			return nil, fmt.Errorf("legacy transaction %d: %w", i, err)
		}
		if generated {
			fresh++
		}
		b.transactions = append(b.transactions, tx)
	}
	if fresh > 0 {
		log.Printf("assigned fresh ids to %d legacy transactions", fresh)
	}
	return b, nil
}

// legacyTransaction converts one record of the legacy export. It reports
// whether a fresh id had to be generated.
func legacyTransaction(record any, currency string) (Transaction, bool, error) {
	m, ok := record.(map[string]any)
	if !ok {
		return Transaction{}, false, fmt.Errorf("%w: record is not an object", ErrInvalidInput)
	}
	str := func(key string) string {
		v, ok := m[key]
		if !ok || v == nil {
			return ""
		}
		return fmt.Sprint(v)
	}

	txType, err := ParseTxType(str("type"))
	if err != nil {
		return Transaction{}, false, err
	}
	mode, err := ParseMode(str("mode"))
	if err != nil {
		return Transaction{}, false, err
	}
	amount, err := legacyDecimal(m["amount"])
	if err != nil {
		return Transaction{}, false, err
	}
	if !amount.IsPositive() {
		return Transaction{}, false, fmt.Errorf("%w: amount must be positive, got %s", ErrInvalidInput, amount)
	}

	var status Status
	switch s := str("status"); Status(s) {
	case Open, Settled:
		status = Status(s)
	default:
		return Transaction{}, false, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, s)
	}

	var date time.Time
	if s := str("date"); s != "" {
		date, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return Transaction{}, false, fmt.Errorf("invalid legacy date %q: %w", s, err)
		}
	}
	var reminderDate Date
	if s := str("reminderDate"); s != "" {
		reminderDate, err = legacyDate(s)
		if err != nil {
			return Transaction{}, false, err
		}
	}

	id := str("id")
	generated := id == ""
	if generated {
		id = uuid.NewString()
	}

	return Transaction{
		ID:           id,
		Type:         txType,
		Amount:       M(amount, currency),
		Mode:         mode,
		Desc:         str("desc"),
		Tag:          str("tags"),
		Person:       str("person"),
		Date:         date,
		ReminderDate: reminderDate,
		Status:       status,
		// The legacy app never recorded the settlement channel.
	}, generated, nil
}

// legacyDecimal reads a number that the legacy app may have stored as a JSON
// number or as the raw text of an input field.
func legacyDecimal(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case nil:
		return decimal.Decimal{}, fmt.Errorf("%w: missing amount", ErrInvalidInput)
	case json.Number:
		return decimal.NewFromString(n.String())
	case string:
		return decimal.NewFromString(n)
	case float64:
		return decimal.NewFromFloat(n), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: amount %v is neither number nor string", ErrInvalidInput, v)
	}
}

// legacyDate reads a day that may be a plain date or a full instant.
func legacyDate(s string) (Date, error) {
	if d, err := ParseDate(s); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid legacy day %q: %w", s, err)
	}
	return DateOf(t), nil
}

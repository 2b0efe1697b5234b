package pocketbook

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// EncodeBook writes the book as a single canonical JSON document.
//
// Field order is fixed (user, currency, balance, transactions, reminders) and
// amounts are written as plain decimal numbers, so encoding the same book
// twice yields byte-identical output. The reminders field is reserved and
// always empty; reminders are derived, never stored.
func EncodeBook(w io.Writer, b *Book) error {
	var jw jsonObjectWriter
	if b.user != nil {
		jw.Append("user", b.user)
	}
	jw.Append("currency", b.currency)

	var bal jsonObjectWriter
	bal.Append("hand", b.balance.Hand.Decimal())
	bal.Append("bank", b.balance.Bank.Decimal())
	jw.Append("balance", &bal)

	txs := b.transactions
	if txs == nil {
		txs = []Transaction{}
	}
	jw.Append("transactions", txs)
	jw.Append("reminders", []any{})

	data, err := jw.MarshalJSON()
	if err != nil {
		return fmt.Errorf("could not encode book: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("could not write book: %w", err)
	}
	return nil
}

// jsonTx is a specialized struct for decoding transaction records. Enum
// fields are read as plain strings and validated afterwards, so that an
// unrecognized type or mode is a decode error instead of a silent no-op.
type jsonTx struct {
	ID           string          `json:"id"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Mode         string          `json:"mode"`
	Desc         string          `json:"desc"`
	Tag          string          `json:"tags"`
	Person       string          `json:"person"`
	Date         time.Time       `json:"date"`
	ReminderDate Date            `json:"reminderDate"`
	Status       string          `json:"status"`
	SettleMode   string          `json:"settleMode"`
	SettledOn    Date            `json:"settledOn"`
}

// DecodeBook reads a single JSON document into a Book.
//
// The cached balances are read as stored; if the history is replayable and
// disagrees with the cache, the mismatch is logged but the stored values win,
// so that a hand-patched document is not silently rewritten.
func DecodeBook(r io.Reader) (*Book, error) {
	var doc struct {
		User     *User  `json:"user"`
		Currency string `json:"currency"`
		Balance  struct {
			Hand decimal.Decimal `json:"hand"`
			Bank decimal.Decimal `json:"bank"`
		} `json:"balance"`
		Transactions []jsonTx `json:"transactions"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("could not decode book document: %w", err)
	}

	b := NewBook()
	if doc.Currency != "" {
		b.currency = doc.Currency
	}
	b.user = doc.User
	b.balance = Balance{Hand: M(doc.Balance.Hand, b.currency), Bank: M(doc.Balance.Bank, b.currency)}

	for _, jt := range doc.Transactions {
		tx, err := jt.transaction(b.currency)
		if err != nil {
			return nil, err
		}
		b.transactions = append(b.transactions, tx)
	}

	if computed, err := b.ComputedBalance(); err == nil {
		if !computed.Hand.Equal(b.balance.Hand) || !computed.Bank.Equal(b.balance.Bank) {
			log.Printf("warning: stored balance hand=%s bank=%s differs from replayed history hand=%s bank=%s",
				b.balance.Hand.Decimal(), b.balance.Bank.Decimal(), computed.Hand.Decimal(), computed.Bank.Decimal())
		}
	}
	return b, nil
}

// transaction validates the decoded record and converts it.
func (jt jsonTx) transaction(currency string) (Transaction, error) {
	txType, err := ParseTxType(jt.Type)
	if err != nil {
		return Transaction{}, fmt.Errorf("transaction %q: %w", jt.ID, err)
	}
	mode, err := ParseMode(jt.Mode)
	if err != nil {
		return Transaction{}, fmt.Errorf("transaction %q: %w", jt.ID, err)
	}
	var settleMode Mode
	if jt.SettleMode != "" {
		settleMode, err = ParseMode(jt.SettleMode)
		if err != nil {
			return Transaction{}, fmt.Errorf("transaction %q: %w", jt.ID, err)
		}
	}
	var status Status
	switch Status(jt.Status) {
	case Open, Settled:
		status = Status(jt.Status)
	default:
		return Transaction{}, fmt.Errorf("transaction %q: %w: unknown status %q", jt.ID, ErrInvalidInput, jt.Status)
	}
	if jt.ID == "" {
		return Transaction{}, fmt.Errorf("%w: transaction without id", ErrInvalidInput)
	}

	return Transaction{
		ID:           jt.ID,
		Type:         txType,
		Amount:       M(jt.Amount, currency),
		Mode:         mode,
		Desc:         jt.Desc,
		Tag:          jt.Tag,
		Person:       jt.Person,
		Date:         jt.Date,
		ReminderDate: jt.ReminderDate,
		Status:       status,
		SettleMode:   settleMode,
		SettledOn:    jt.SettledOn,
	}, nil
}

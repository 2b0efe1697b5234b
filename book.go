package pocketbook

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/google/uuid"
)

// DefaultCurrency is the currency a new book starts with.
const DefaultCurrency = "INR"

// Error kinds reported by book operations. A failed operation leaves the
// book untouched; callers test the kind with errors.Is.
var (
	ErrNotFound       = errors.New("transaction not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrAlreadySettled = errors.New("loan already settled")
	ErrNotRegistered  = errors.New("no user registered")
	ErrWrongPIN       = errors.New("wrong pin")
)

// User is the registered identity of the book owner. The PIN is stored and
// compared in cleartext; it gates the UI, it is not a security boundary.
type User struct {
	Name string `json:"name"`
	PIN  string `json:"pin"`
}

// Balance is the pair of running cash balances. Either bucket may go
// negative: there is no overdraft protection, on purpose.
type Balance struct {
	Hand Money
	Bank Money
}

// Of returns the balance of the given bucket.
func (b Balance) Of(m Mode) Money {
	switch m {
	case Hand:
		return b.Hand
	case Bank:
		return b.Bank
	default:
		panic("unknown mode: " + string(m))
	}
}

// Total returns hand and bank combined.
func (b Balance) Total() Money { return b.Hand.Add(b.Bank) }

// Book is the entire persisted state: one per installed app instance.
//
// Transactions are kept newest first; insertion order is the display and
// evaluation order. The balance pair is a cache of the replayed history, kept
// exact by every mutating operation.
type Book struct {
	user         *User
	currency     string
	balance      Balance
	transactions []Transaction // newest first
}

// NewBook creates an empty book in the default currency.
func NewBook() *Book {
	return &Book{
		currency: DefaultCurrency,
		balance:  Balance{Hand: M(0, DefaultCurrency), Bank: M(0, DefaultCurrency)},
	}
}

// Currency returns the book currency.
func (b *Book) Currency() string { return b.currency }

// User returns the registered user, if any.
func (b *Book) User() (User, bool) {
	if b.user == nil {
		return User{}, false
	}
	return *b.user, true
}

// Balance returns the current cached balance pair.
func (b *Book) Balance() Balance { return b.balance }

// Len returns the number of recorded transactions.
func (b *Book) Len() int { return len(b.transactions) }

// Register records the book owner. The pin must be exactly four digits.
// Registering again overwrites the previous identity.
func (b *Book) Register(name, pin string) error {
	if name == "" {
		return fmt.Errorf("%w: name is missing", ErrInvalidInput)
	}
	if !validPIN(pin) {
		return fmt.Errorf("%w: pin must be exactly 4 digits", ErrInvalidInput)
	}
	b.user = &User{Name: name, PIN: pin}
	return nil
}

// Login checks the pin against the registered user.
func (b *Book) Login(pin string) (User, error) {
	if b.user == nil {
		return User{}, ErrNotRegistered
	}
	if b.user.PIN != pin {
		return User{}, ErrWrongPIN
	}
	return *b.user, nil
}

func validPIN(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// bucket returns a pointer to the balance bucket for the given mode.
func (b *Book) bucket(m Mode) *Money {
	switch m {
	case Hand:
		return &b.balance.Hand
	case Bank:
		return &b.balance.Bank
	default:
		panic("unknown mode: " + string(m))
	}
}

// apply adds delta to the given bucket.
func (b *Book) apply(delta Money, m Mode) {
	bucket := b.bucket(m)
	*bucket = bucket.Add(delta)
}

// TxInput carries the caller-supplied fields of a new transaction. The book
// assigns the id and the creation instant.
type TxInput struct {
	Type         TxType
	Amount       Money
	Mode         Mode
	Desc         string
	Tag          string // category, debits only
	Person       string // counterparty, loans only
	ReminderDate Date   // follow-up day, lends only
}

// Add validates the input, records a new transaction at the head of the book,
// and applies its balance effect. It returns the stored transaction.
func (b *Book) Add(in TxInput) (Transaction, error) {
	if _, err := ParseTxType(string(in.Type)); err != nil {
		return Transaction{}, err
	}
	if _, err := ParseMode(string(in.Mode)); err != nil {
		return Transaction{}, err
	}
	if !in.Amount.IsPositive() {
		return Transaction{}, fmt.Errorf("%w: amount must be positive, got %s", ErrInvalidInput, in.Amount.Decimal())
	}
	if in.Type.IsLoan() && in.Person == "" {
		return Transaction{}, fmt.Errorf("%w: %s transaction needs a person", ErrInvalidInput, in.Type)
	}

	tx := Transaction{
		ID:           uuid.NewString(),
		Type:         in.Type,
		Amount:       M(in.Amount.Decimal(), b.currency),
		Mode:         in.Mode,
		Desc:         in.Desc,
		Tag:          in.Tag,
		Person:       in.Person,
		Date:         time.Now(),
		ReminderDate: in.ReminderDate,
	}
	b.transactions = slices.Insert(b.transactions, 0, tx)
	b.apply(tx.Effect(), tx.Mode)
	return tx, nil
}

// EditInput carries the editable fields of a credit or debit transaction.
// Zero values mean "keep the current value"; clearing a desc or tag is done
// by deleting and re-adding the transaction.
type EditInput struct {
	Amount Money
	Mode   Mode
	Desc   string
	Tag    string
}

// Edit changes a credit or debit transaction in place. The id, type and
// creation date are preserved. The balance is adjusted by reverting the old
// effect and applying the new one, in one logical step: the new fields are
// validated before the old effect is touched, so a failed edit changes
// nothing.
//
// Loans are not editable through this path; settle or delete them instead.
func (b *Book) Edit(id string, in EditInput) (Transaction, error) {
	i, ok := b.find(id)
	if !ok {
		return Transaction{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	old := b.transactions[i]
	if old.Type.IsLoan() {
		return Transaction{}, fmt.Errorf("%w: %s transactions cannot be edited", ErrInvalidInput, old.Type)
	}

	// Resolve and validate the new fields before mutating anything.
	updated := old
	if !in.Amount.IsZero() {
		if !in.Amount.IsPositive() {
			return Transaction{}, fmt.Errorf("%w: amount must be positive, got %s", ErrInvalidInput, in.Amount.Decimal())
		}
		updated.Amount = M(in.Amount.Decimal(), b.currency)
	}
	if in.Mode != "" {
		mode, err := ParseMode(string(in.Mode))
		if err != nil {
			return Transaction{}, err
		}
		updated.Mode = mode
	}
	if in.Desc != "" {
		updated.Desc = in.Desc
	}
	if in.Tag != "" {
		updated.Tag = in.Tag
	}

	// Revert the old effect, apply the new one. The type is not editable, so
	// both effects use the original type.
	b.apply(old.Effect().Neg(), old.Mode)
	b.apply(updated.Effect(), updated.Mode)
	b.transactions[i] = updated
	return updated, nil
}

// Delete removes a transaction and reverts its balance effect. A settled
// loan's effect was already neutralized by its settlement, so deleting one
// removes the record without touching the balances.
func (b *Book) Delete(id string) error {
	i, ok := b.find(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	tx := b.transactions[i]
	if !tx.Type.IsLoan() || !tx.Settled() {
		b.apply(tx.Effect().Neg(), tx.Mode)
	}
	b.transactions = slices.Delete(b.transactions, i, i+1)
	return nil
}

// Settle closes an open loan, recording the repayment through the given mode.
// The settlement mode may differ from the mode the loan was disbursed through:
// lending from hand and being repaid to bank are two separate cash movements,
// and both stay on the balances.
func (b *Book) Settle(id string, mode Mode) (Transaction, error) {
	i, ok := b.find(id)
	if !ok {
		return Transaction{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	tx := b.transactions[i]
	if !tx.Type.IsLoan() {
		return Transaction{}, fmt.Errorf("%w: cannot settle a %s transaction", ErrInvalidInput, tx.Type)
	}
	if tx.Settled() {
		return Transaction{}, fmt.Errorf("%w: %q", ErrAlreadySettled, id)
	}
	settleMode, err := ParseMode(string(mode))
	if err != nil {
		return Transaction{}, err
	}

	b.apply(tx.SettlementEffect(), settleMode)
	tx.Status = Settled
	tx.SettleMode = settleMode
	tx.SettledOn = Today()
	b.transactions[i] = tx
	return tx, nil
}

// find returns the index of the transaction with the given id.
func (b *Book) find(id string) (int, bool) {
	for i, tx := range b.transactions {
		if tx.ID == id {
			return i, true
		}
	}
	return 0, false
}

// Find returns a copy of the transaction with the given id.
func (b *Book) Find(id string) (Transaction, bool) {
	i, ok := b.find(id)
	if !ok {
		return Transaction{}, false
	}
	return b.transactions[i], true
}

// Transactions returns an iterator over transactions in book order (newest
// first), keeping those accepted by at least one of the filters.
func (b *Book) Transactions(filters ...func(Transaction) bool) iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for _, tx := range b.transactions {
			accept := false
			for _, filter := range filters {
				if filter(tx) {
					accept = true
					break
				}
			}
			if !accept {
				continue
			}
			if !yield(tx) {
				return
			}
		}
	}
}

// AcceptAll is a predicate that accepts every transaction.
func AcceptAll(Transaction) bool { return true }

// ByType returns a predicate that filters transactions by type.
func ByType(t TxType) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.Type == t }
}

// OpenLoans is a predicate that accepts loans not yet settled.
func OpenLoans(tx Transaction) bool { return tx.Type.IsLoan() && !tx.Settled() }

// SpendingByTag groups debit transactions by tag, summing amounts per tag.
// Untagged debits are excluded.
func (b *Book) SpendingByTag() map[string]Money {
	spending := make(map[string]Money)
	for tx := range b.Transactions(ByType(Debit)) {
		if tx.Tag == "" {
			continue
		}
		spending[tx.Tag] = spending[tx.Tag].Add(tx.Amount)
	}
	return spending
}

// ComputedBalance replays the whole history and returns the balance pair it
// produces: every transaction's effect on its own bucket, plus, for settled
// loans, the settlement effect on the recorded settlement bucket.
//
// This is the ground truth the cached [Book.Balance] must always equal. It
// fails on a settled loan with no recorded settlement mode (possible in books
// imported from the legacy web app, which did not keep the repayment channel).
func (b *Book) ComputedBalance() (Balance, error) {
	balance := Balance{Hand: M(0, b.currency), Bank: M(0, b.currency)}
	add := func(delta Money, m Mode) {
		switch m {
		case Hand:
			balance.Hand = balance.Hand.Add(delta)
		case Bank:
			balance.Bank = balance.Bank.Add(delta)
		}
	}
	// Replay in insertion order, oldest first.
	for i := len(b.transactions) - 1; i >= 0; i-- {
		tx := b.transactions[i]
		add(tx.Effect(), tx.Mode)
		if tx.Type.IsLoan() && tx.Settled() {
			if tx.SettleMode == "" {
				return Balance{}, fmt.Errorf("settled %s %q has no recorded settlement mode, history is not replayable", tx.Type, tx.ID)
			}
			add(tx.SettlementEffect(), tx.SettleMode)
		}
	}
	return balance, nil
}

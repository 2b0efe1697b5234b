package pocketbook

import (
	"errors"
	"testing"
)

// amt is a test helper for amounts in the default currency.
func amt(v float64) Money { return M(v, DefaultCurrency) }

// checkBalance asserts the cached balance pair.
func checkBalance(t *testing.T, b *Book, hand, bank float64) {
	t.Helper()
	if got, want := b.Balance().Hand, amt(hand); !got.Equal(want) {
		t.Errorf("hand balance = %s, want %s", got.Decimal(), want.Decimal())
	}
	if got, want := b.Balance().Bank, amt(bank); !got.Equal(want) {
		t.Errorf("bank balance = %s, want %s", got.Decimal(), want.Decimal())
	}
}

// checkReplay asserts that the cached balances equal the replayed history.
func checkReplay(t *testing.T, b *Book) {
	t.Helper()
	computed, err := b.ComputedBalance()
	if err != nil {
		t.Fatalf("ComputedBalance() failed: %v", err)
	}
	if !computed.Hand.Equal(b.Balance().Hand) || !computed.Bank.Equal(b.Balance().Bank) {
		t.Errorf("cache hand=%s bank=%s diverged from replay hand=%s bank=%s",
			b.Balance().Hand.Decimal(), b.Balance().Bank.Decimal(),
			computed.Hand.Decimal(), computed.Bank.Decimal())
	}
}

func TestBook_AddEffects(t *testing.T) {
	testCases := []struct {
		name       string
		txType     TxType
		mode       Mode
		amount     float64
		hand, bank float64
	}{
		{name: "credit adds to hand", txType: Credit, mode: Hand, amount: 500, hand: 500},
		{name: "credit adds to bank", txType: Credit, mode: Bank, amount: 500, bank: 500},
		{name: "debit removes from hand", txType: Debit, mode: Hand, amount: 120, hand: -120},
		{name: "lend removes from bank", txType: Lend, mode: Bank, amount: 200, bank: -200},
		{name: "borrow adds to hand", txType: Borrow, mode: Hand, amount: 300, hand: 300},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBook()
			tx, err := b.Add(TxInput{Type: tc.txType, Amount: amt(tc.amount), Mode: tc.mode, Person: "Sam"})
			if err != nil {
				t.Fatalf("Add() failed: %v", err)
			}
			if tx.ID == "" {
				t.Error("Add() returned a transaction without id")
			}
			if tx.Date.IsZero() {
				t.Error("Add() returned a transaction without creation instant")
			}
			checkBalance(t, b, tc.hand, tc.bank)
			checkReplay(t, b)
		})
	}
}

func TestBook_AddRejectsInvalidInput(t *testing.T) {
	testCases := []struct {
		name string
		in   TxInput
	}{
		{name: "zero amount", in: TxInput{Type: Credit, Amount: amt(0), Mode: Hand}},
		{name: "negative amount", in: TxInput{Type: Debit, Amount: amt(-10), Mode: Hand}},
		{name: "unknown type", in: TxInput{Type: "transfer", Amount: amt(10), Mode: Hand}},
		{name: "unknown mode", in: TxInput{Type: Credit, Amount: amt(10), Mode: "wallet"}},
		{name: "loan without person", in: TxInput{Type: Lend, Amount: amt(10), Mode: Hand}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBook()
			if _, err := b.Add(tc.in); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Add() error = %v, want ErrInvalidInput", err)
			}
			if b.Len() != 0 {
				t.Error("failed Add() recorded a transaction")
			}
			checkBalance(t, b, 0, 0)
		})
	}
}

func TestBook_AddPrepends(t *testing.T) {
	b := NewBook()
	first, _ := b.Add(TxInput{Type: Credit, Amount: amt(10), Mode: Hand})
	second, _ := b.Add(TxInput{Type: Credit, Amount: amt(20), Mode: Hand})

	var ids []string
	for tx := range b.Transactions(AcceptAll) {
		ids = append(ids, tx.ID)
	}
	if len(ids) != 2 || ids[0] != second.ID || ids[1] != first.ID {
		t.Errorf("transactions not newest-first: got %v, want [%s %s]", ids, second.ID, first.ID)
	}
}

func TestBook_EditAdjustsByDelta(t *testing.T) {
	b := NewBook()
	tx, _ := b.Add(TxInput{Type: Debit, Amount: amt(50), Mode: Hand, Desc: "groceries", Tag: "food"})
	checkBalance(t, b, -50, 0)

	// Editing the amount moves the balance by exactly (new effect - old effect).
	if _, err := b.Edit(tx.ID, EditInput{Amount: amt(80)}); err != nil {
		t.Fatalf("Edit() failed: %v", err)
	}
	checkBalance(t, b, -80, 0)
	checkReplay(t, b)

	// Moving the mode transfers the effect between buckets.
	if _, err := b.Edit(tx.ID, EditInput{Mode: Bank}); err != nil {
		t.Fatalf("Edit() failed: %v", err)
	}
	checkBalance(t, b, 0, -80)
	checkReplay(t, b)

	// Desc and tag edits leave balances alone.
	got, err := b.Edit(tx.ID, EditInput{Desc: "weekly groceries", Tag: "household"})
	if err != nil {
		t.Fatalf("Edit() failed: %v", err)
	}
	if got.Desc != "weekly groceries" || got.Tag != "household" {
		t.Errorf("Edit() did not merge fields: got %q %q", got.Desc, got.Tag)
	}
	if got.ID != tx.ID || !got.Date.Equal(tx.Date) {
		t.Error("Edit() must preserve id and creation date")
	}
	checkBalance(t, b, 0, -80)
	checkReplay(t, b)
}

func TestBook_EditFailures(t *testing.T) {
	b := NewBook()
	loan, _ := b.Add(TxInput{Type: Lend, Amount: amt(100), Mode: Hand, Person: "Sam"})
	debit, _ := b.Add(TxInput{Type: Debit, Amount: amt(50), Mode: Bank})

	if _, err := b.Edit("nope", EditInput{Amount: amt(1)}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Edit(unknown) error = %v, want ErrNotFound", err)
	}
	if _, err := b.Edit(loan.ID, EditInput{Amount: amt(1)}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Edit(loan) error = %v, want ErrInvalidInput", err)
	}
	// An invalid new amount must fail before the old effect is reverted.
	if _, err := b.Edit(debit.ID, EditInput{Amount: amt(-5)}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Edit(negative) error = %v, want ErrInvalidInput", err)
	}
	checkBalance(t, b, -100, -50)
	checkReplay(t, b)
}

func TestBook_DeleteRevertsEffect(t *testing.T) {
	b := NewBook()
	b.Add(TxInput{Type: Credit, Amount: amt(500), Mode: Bank})
	tx, _ := b.Add(TxInput{Type: Debit, Amount: amt(50), Mode: Bank})
	checkBalance(t, b, 0, 450)

	if err := b.Delete(tx.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	checkBalance(t, b, 0, 500)
	checkReplay(t, b)

	if _, ok := b.Find(tx.ID); ok {
		t.Error("deleted transaction still present")
	}
	if err := b.Delete(tx.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(deleted) error = %v, want ErrNotFound", err)
	}
}

func TestBook_DeleteOpenLoanReverts(t *testing.T) {
	b := NewBook()
	tx, _ := b.Add(TxInput{Type: Lend, Amount: amt(200), Mode: Hand, Person: "Sam"})
	checkBalance(t, b, -200, 0)

	if err := b.Delete(tx.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	checkBalance(t, b, 0, 0)
	checkReplay(t, b)
}

func TestBook_DeleteSettledLoanKeepsBalances(t *testing.T) {
	b := NewBook()
	tx, _ := b.Add(TxInput{Type: Lend, Amount: amt(200), Mode: Hand, Person: "Sam"})
	if _, err := b.Settle(tx.ID, Bank); err != nil {
		t.Fatalf("Settle() failed: %v", err)
	}
	checkBalance(t, b, -200, 200)

	// The settlement already neutralized the loan: deleting it afterward must
	// not adjust balances a second time.
	if err := b.Delete(tx.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	checkBalance(t, b, -200, 200)
	checkReplay(t, b)
}

func TestBook_SettleCrossMode(t *testing.T) {
	b := NewBook()
	tx, _ := b.Add(TxInput{Type: Lend, Amount: amt(100), Mode: Hand, Person: "Sam"})

	settled, err := b.Settle(tx.ID, Bank)
	if err != nil {
		t.Fatalf("Settle() failed: %v", err)
	}
	// Disbursed from hand, repaid to bank: both movements stay, no
	// cross-cancellation.
	checkBalance(t, b, -100, 100)
	checkReplay(t, b)

	if settled.Status != Settled || settled.SettleMode != Bank || settled.SettledOn.IsZero() {
		t.Errorf("Settle() did not record settlement: %+v", settled)
	}
}

func TestBook_SettleBorrow(t *testing.T) {
	b := NewBook()
	tx, _ := b.Add(TxInput{Type: Borrow, Amount: amt(300), Mode: Bank, Person: "Maya"})
	checkBalance(t, b, 0, 300)

	if _, err := b.Settle(tx.ID, Hand); err != nil {
		t.Fatalf("Settle() failed: %v", err)
	}
	checkBalance(t, b, -300, 300)
	checkReplay(t, b)
}

func TestBook_SettleFailures(t *testing.T) {
	b := NewBook()
	debit, _ := b.Add(TxInput{Type: Debit, Amount: amt(10), Mode: Hand})
	loan, _ := b.Add(TxInput{Type: Lend, Amount: amt(100), Mode: Hand, Person: "Sam"})

	if _, err := b.Settle("nope", Hand); !errors.Is(err, ErrNotFound) {
		t.Errorf("Settle(unknown) error = %v, want ErrNotFound", err)
	}
	if _, err := b.Settle(debit.ID, Hand); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Settle(debit) error = %v, want ErrInvalidInput", err)
	}
	if _, err := b.Settle(loan.ID, "wallet"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Settle(bad mode) error = %v, want ErrInvalidInput", err)
	}

	if _, err := b.Settle(loan.ID, Bank); err != nil {
		t.Fatalf("Settle() failed: %v", err)
	}
	balanceAfterFirst := b.Balance()

	// Settling twice fails and leaves balances unchanged.
	if _, err := b.Settle(loan.ID, Bank); !errors.Is(err, ErrAlreadySettled) {
		t.Errorf("Settle(settled) error = %v, want ErrAlreadySettled", err)
	}
	if got := b.Balance(); !got.Hand.Equal(balanceAfterFirst.Hand) || !got.Bank.Equal(balanceAfterFirst.Bank) {
		t.Error("second Settle() changed balances")
	}
}

func TestBook_SpendingByTag(t *testing.T) {
	b := NewBook()
	b.Add(TxInput{Type: Debit, Amount: amt(50), Mode: Hand, Tag: "food"})
	b.Add(TxInput{Type: Debit, Amount: amt(30), Mode: Bank, Tag: "food"})
	b.Add(TxInput{Type: Debit, Amount: amt(15), Mode: Hand}) // untagged, excluded
	b.Add(TxInput{Type: Credit, Amount: amt(1000), Mode: Bank, Tag: "salary"}) // not a debit

	spending := b.SpendingByTag()
	if len(spending) != 1 {
		t.Fatalf("SpendingByTag() = %v, want a single tag", spending)
	}
	if got := spending["food"]; !got.Equal(amt(80)) {
		t.Errorf("SpendingByTag()[food] = %s, want 80", got.Decimal())
	}
}

func TestBook_TransactionsFilter(t *testing.T) {
	b := NewBook()
	b.Add(TxInput{Type: Credit, Amount: amt(10), Mode: Hand})
	b.Add(TxInput{Type: Lend, Amount: amt(20), Mode: Hand, Person: "Sam"})
	b.Add(TxInput{Type: Debit, Amount: amt(5), Mode: Bank})

	count := 0
	for tx := range b.Transactions(ByType(Lend)) {
		count++
		if tx.Type != Lend {
			t.Errorf("ByType(Lend) yielded a %s", tx.Type)
		}
	}
	if count != 1 {
		t.Errorf("ByType(Lend) yielded %d transactions, want 1", count)
	}

	open := 0
	for range b.Transactions(OpenLoans) {
		open++
	}
	if open != 1 {
		t.Errorf("OpenLoans yielded %d transactions, want 1", open)
	}
}

func TestBook_RegisterAndLogin(t *testing.T) {
	b := NewBook()

	if _, err := b.Login("1234"); !errors.Is(err, ErrNotRegistered) {
		t.Errorf("Login() on empty book error = %v, want ErrNotRegistered", err)
	}
	if err := b.Register("", "1234"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Register(no name) error = %v, want ErrInvalidInput", err)
	}
	if err := b.Register("Asha", "12a4"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Register(bad pin) error = %v, want ErrInvalidInput", err)
	}
	if err := b.Register("Asha", "1234"); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	if _, err := b.Login("0000"); !errors.Is(err, ErrWrongPIN) {
		t.Errorf("Login(wrong pin) error = %v, want ErrWrongPIN", err)
	}
	user, err := b.Login("1234")
	if err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	if user.Name != "Asha" {
		t.Errorf("Login() user = %q, want Asha", user.Name)
	}
}

// The end-to-end scenario of the dashboard walkthrough: every mutation keeps
// the cache equal to the replayed history.
func TestBook_EndToEnd(t *testing.T) {
	b := NewBook()
	checkBalance(t, b, 0, 0)

	b.Add(TxInput{Type: Credit, Amount: amt(500), Mode: Hand, Desc: "salary advance"})
	checkBalance(t, b, 500, 0)

	loan, _ := b.Add(TxInput{Type: Lend, Amount: amt(200), Mode: Hand, Person: "Sam"})
	checkBalance(t, b, 300, 0)

	b.Settle(loan.ID, Bank)
	checkBalance(t, b, 300, 200)

	debit, _ := b.Add(TxInput{Type: Debit, Amount: amt(50), Mode: Bank})
	checkBalance(t, b, 300, 150)

	b.Delete(debit.ID)
	checkBalance(t, b, 300, 200)

	checkReplay(t, b)
}

package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pocketbook"
	"github.com/etnz/pocketbook/renderer"
	"github.com/google/subcommands"
)

// recordTransaction validates and appends a transaction to the app book file.
func recordTransaction(in pocketbook.TxInput) subcommands.ExitStatus {
	b, err := loadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	tx, err := b.Add(in)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if err := saveBook(b); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("%s (id %s)\n", renderer.Transaction(tx), tx.ID)
	return subcommands.ExitSuccess
}

// parseAmount parses a positive amount in the book currency.
func parseAmount(s string) (pocketbook.Money, error) {
	return pocketbook.ParseMoney(s, pocketbook.DefaultCurrency)
}

// --- Credit / Debit Commands ---

// cashCmd records a plain money movement. The same command serves credit and
// debit; kind decides the sign.
type cashCmd struct {
	kind   pocketbook.TxType
	amount string
	mode   string
	desc   string
	tag    string
}

func (c *cashCmd) Name() string { return string(c.kind) }
func (c *cashCmd) Synopsis() string {
	if c.kind == pocketbook.Credit {
		return "record money received"
	}
	return "record money spent"
}
func (c *cashCmd) Usage() string {
	return fmt.Sprintf(`%s -a <amount> -m <mode> [-desc <text>] [-tag <tag>]

  Records a %s and applies it to the hand or bank balance.
`, c.kind, c.kind)
}

func (c *cashCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "a", "", "Amount (positive)")
	f.StringVar(&c.mode, "m", "hand", "Mode: hand or bank")
	f.StringVar(&c.desc, "desc", "", "An optional note for the transaction")
	f.StringVar(&c.tag, "tag", "", "An optional category tag")
}

func (c *cashCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	amount, err := parseAmount(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
		return subcommands.ExitUsageError
	}
	mode, err := pocketbook.ParseMode(c.mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	return recordTransaction(pocketbook.TxInput{
		Type:   c.kind,
		Amount: amount,
		Mode:   mode,
		Desc:   c.desc,
		Tag:    c.tag,
	})
}

// --- Lend / Borrow Commands ---

// loanCmd records a loan in either direction; kind decides which.
type loanCmd struct {
	kind     pocketbook.TxType
	amount   string
	mode     string
	person   string
	desc     string
	reminder string
}

func (c *loanCmd) Name() string { return string(c.kind) }
func (c *loanCmd) Synopsis() string {
	if c.kind == pocketbook.Lend {
		return "record money lent to someone"
	}
	return "record money borrowed from someone"
}
func (c *loanCmd) Usage() string {
	return fmt.Sprintf(`%s -a <amount> -p <person> [-m <mode>] [-desc <text>] [-remind <date>]

  Records a %s. The loan stays open until settled.
`, c.kind, c.kind)
}

func (c *loanCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "a", "", "Amount (positive)")
	f.StringVar(&c.mode, "m", "hand", "Mode: hand or bank")
	f.StringVar(&c.person, "p", "", "Counterparty name")
	f.StringVar(&c.desc, "desc", "", "An optional note for the transaction")
	if c.kind == pocketbook.Lend {
		f.StringVar(&c.reminder, "remind", "", "Follow-up date (YYYY-MM-DD)")
	}
}

func (c *loanCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount == "" || c.person == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	amount, err := parseAmount(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
		return subcommands.ExitUsageError
	}
	mode, err := pocketbook.ParseMode(c.mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	var reminder pocketbook.Date
	if c.reminder != "" {
		reminder, err = pocketbook.ParseDate(c.reminder)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing reminder date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	return recordTransaction(pocketbook.TxInput{
		Type:         c.kind,
		Amount:       amount,
		Mode:         mode,
		Desc:         c.desc,
		Person:       c.person,
		ReminderDate: reminder,
	})
}

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

// --- Edit Command ---

type editCmd struct {
	id     string
	amount string
	mode   string
	desc   string
	tag    string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "change a credit or debit transaction" }
func (*editCmd) Usage() string {
	return `edit -id <id> [-a <amount>] [-m <mode>] [-desc <text>] [-tag <tag>]

  Changes the given fields of a credit or debit transaction and adjusts the
  balances accordingly. Omitted flags keep their current value. Loans cannot
  be edited; settle or delete them.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Transaction id")
	f.StringVar(&c.amount, "a", "", "New amount")
	f.StringVar(&c.mode, "m", "", "New mode: hand or bank")
	f.StringVar(&c.desc, "desc", "", "New note")
	f.StringVar(&c.tag, "tag", "", "New category tag")
}

func (c *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	var in pocketbook.EditInput
	if c.amount != "" {
		amount, err := parseAmount(c.amount)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
			return subcommands.ExitUsageError
		}
		in.Amount = amount
	}
	in.Mode = pocketbook.Mode(c.mode)
	in.Desc = c.desc
	in.Tag = c.tag

	b, err := loadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	tx, err := b.Edit(c.id, in)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if err := saveBook(b); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Updated: %s\n", renderer.Transaction(tx))
	return subcommands.ExitSuccess
}

// --- Delete Command ---

type deleteCmd struct {
	id string
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "remove a transaction" }
func (*deleteCmd) Usage() string {
	return `delete -id <id>

  Removes a transaction and reverts its effect on the balances. Deleting a
  settled loan removes the record only: its money already came back.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Transaction id")
}

func (c *deleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	b, err := loadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := b.Delete(c.id); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if err := saveBook(b); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Deleted %s\n", c.id)
	return subcommands.ExitSuccess
}

// --- Settle Command ---

type settleCmd struct {
	id   string
	mode string
}

func (*settleCmd) Name() string     { return "settle" }
func (*settleCmd) Synopsis() string { return "close an open loan" }
func (*settleCmd) Usage() string {
	return `settle -id <id> [-m <mode>]

  Records the repayment of a loan through the given mode. The repayment may
  come through a different channel than the loan went out on.
`
}

func (c *settleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Loan transaction id")
	f.StringVar(&c.mode, "m", "hand", "Mode the repayment moved through: hand or bank")
}

func (c *settleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	b, err := loadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	tx, err := b.Settle(c.id, pocketbook.Mode(c.mode))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if err := saveBook(b); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Settled: %s\n", renderer.Transaction(tx))
	return subcommands.ExitSuccess
}

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

type txCmd struct {
	txType string
	open   bool
	head   int
	tail   int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list transactions in the book" }
func (*txCmd) Usage() string {
	return `tx [-type <type>] [-open] [-head <n>] [-tail <n>]

  Lists transactions newest first, with options for filtering and limiting
  the output.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.txType, "type", "", "Keep only this type (credit, debit, lend, borrow).")
	f.BoolVar(&c.open, "open", false, "Keep only loans not yet settled.")
	f.IntVar(&c.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&c.tail, "tail", 0, "Show only the last N transactions.")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.head > 0 && c.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}

	filter := pocketbook.AcceptAll
	if c.txType != "" {
		t, err := pocketbook.ParseTxType(c.txType)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		filter = pocketbook.ByType(t)
	}
	if c.open {
		filter = pocketbook.OpenLoans
	}

	b, err := loadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var transactions []pocketbook.Transaction
	for tx := range b.Transactions(filter) {
		transactions = append(transactions, tx)
	}

	if c.head > 0 && len(transactions) > c.head {
		transactions = transactions[:c.head]
	}
	if c.tail > 0 && len(transactions) > c.tail {
		transactions = transactions[len(transactions)-c.tail:]
	}

	printMarkdown(renderer.Transactions(transactions))

	return subcommands.ExitSuccess
}

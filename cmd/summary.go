package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pocketbook/renderer"
	"github.com/google/subcommands"
)

// --- Summary Command ---

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "show the hand and bank balances" }
func (*summaryCmd) Usage() string {
	return `summary

  Shows the current balance of each bucket and their total.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b, err := loadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.Summary(b.Balance()))
	return subcommands.ExitSuccess
}

// --- Spending Command ---

type spendingCmd struct{}

func (*spendingCmd) Name() string     { return "spending" }
func (*spendingCmd) Synopsis() string { return "show spending totals per category tag" }
func (*spendingCmd) Usage() string {
	return `spending

  Groups debit transactions by tag and shows the total spent in each
  category, largest first. Untagged debits are not counted.
`
}

func (c *spendingCmd) SetFlags(f *flag.FlagSet) {}

func (c *spendingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b, err := loadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.Spending(b.SpendingByTag()))
	return subcommands.ExitSuccess
}

package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type checkCmd struct {
	write bool
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "verify the book file" }
func (*checkCmd) Usage() string {
	return `check [-w]

  Replays the whole history and compares the result with the stored
  balances. With -w, also rewrites the file in canonical form (stable field
  order, one known layout).
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.write, "w", false, "Rewrite the book file in canonical form.")
}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b, err := loadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	computed, err := b.ComputedBalance()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot replay the history: %v\n", err)
		return subcommands.ExitFailure
	}
	stored := b.Balance()
	if !stored.Hand.Equal(computed.Hand) || !stored.Bank.Equal(computed.Bank) {
		fmt.Fprintf(os.Stderr, "Stored balances (hand %s, bank %s) do not match the history (hand %s, bank %s)\n",
			stored.Hand, stored.Bank, computed.Hand, computed.Bank)
		return subcommands.ExitFailure
	}

	fmt.Printf("%s: %d transactions, balances check out\n", *bookFile, b.Len())

	if c.write {
		if err := saveBook(b); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Rewrote %s\n", *bookFile)
	}
	return subcommands.ExitSuccess
}

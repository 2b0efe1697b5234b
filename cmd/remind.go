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

type remindCmd struct {
	date string
}

func (*remindCmd) Name() string     { return "remind" }
func (*remindCmd) Synopsis() string { return "show collection reminders for open lends" }
func (*remindCmd) Usage() string {
	return `remind [-d <date>]

  Evaluates the open lends against the given day (today by default): a lend
  with a follow-up date fires on that day and every day after; one without
  fires every seventh day since it was made.
`
}

func (c *remindCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Evaluation day (YYYY-MM-DD), defaults to today")
}

func (c *remindCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	today := pocketbook.Today()
	if c.date != "" {
		var err error
		today, err = pocketbook.ParseDate(c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	b, err := loadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.Reminders(pocketbook.Reminders(b, today)))
	return subcommands.ExitSuccess
}

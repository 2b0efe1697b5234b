package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// --- Register Command ---

type registerCmd struct {
	name string
	pin  string
}

func (*registerCmd) Name() string     { return "register" }
func (*registerCmd) Synopsis() string { return "register the book owner" }
func (*registerCmd) Usage() string {
	return `register -n <name> -pin <pin>

  Records the owner of the book with a 4-digit pin. Registering again
  replaces the previous identity and keeps the transactions.
`
}

func (c *registerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "Owner name")
	f.StringVar(&c.pin, "pin", "", "4-digit pin")
}

func (c *registerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" || c.pin == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	b, err := loadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := b.Register(c.name, c.pin); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if err := saveBook(b); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Registered %s in %s\n", c.name, *bookFile)
	return subcommands.ExitSuccess
}

// --- Login Command ---

type loginCmd struct {
	pin string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "check the pin and greet the owner" }
func (*loginCmd) Usage() string {
	return `login -pin <pin>

  Verifies the pin against the registered owner and shows the reminders due
  today, the way the app greets its user on unlock.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.pin, "pin", "", "4-digit pin")
}

func (c *loginCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b, err := loadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	user, err := b.Login(c.pin)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Welcome back, %s\n", user.Name)
	return (&remindCmd{}).Execute(context.Background(), f)
}

// Package cmd implements the CLI application to manage a pocketbook.
package cmd

import (
	"flag"

	"github.com/etnz/pocketbook"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&registerCmd{}, "account")
	c.Register(&loginCmd{}, "account")

	c.Register(&cashCmd{kind: pocketbook.Credit}, "transactions")
	c.Register(&cashCmd{kind: pocketbook.Debit}, "transactions")
	c.Register(&loanCmd{kind: pocketbook.Lend}, "transactions")
	c.Register(&loanCmd{kind: pocketbook.Borrow}, "transactions")
	c.Register(&editCmd{}, "transactions")
	c.Register(&deleteCmd{}, "transactions")
	c.Register(&settleCmd{}, "transactions")

	c.Register(&txCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")
	c.Register(&spendingCmd{}, "reports")
	c.Register(&remindCmd{}, "reports")

	c.Register(&checkCmd{}, "maintenance")
	c.Register(&importCmd{}, "maintenance")
	c.Register(&topicCmd{}, "maintenance")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var bookFile = flag.String("f", "pocketbook.json", "Path to the book file (a single JSON document)")

// loadBook loads the book from the app book file. A missing file yields an
// empty book, so every command works on a fresh install.
func loadBook() (*pocketbook.Book, error) {
	return pocketbook.NewFileStore(*bookFile).Load()
}

// saveBook writes the book back to the app book file.
func saveBook(b *pocketbook.Book) error {
	return pocketbook.NewFileStore(*bookFile).Save(b)
}

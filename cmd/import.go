package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pocketbook"
	"github.com/google/subcommands"
)

type importCmd struct {
	from string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import a legacy web app export" }
func (*importCmd) Usage() string {
	return `import -from <file>

  Reads a localStorage export of the original web app and replaces the book
  file with it. Legacy records missing an id get a fresh one.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Path to the legacy export (JSON)")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.from == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	in, err := os.Open(c.from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening export %q: %v\n", c.from, err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	b, err := pocketbook.ImportLegacy(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing %q: %v\n", c.from, err)
		return subcommands.ExitFailure
	}
	if err := saveBook(b); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Imported %d transactions into %s\n", b.Len(), *bookFile)
	return subcommands.ExitSuccess
}

package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/pocketbook/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// Shell completion: `COMP_INSTALL=1 pkt` installs it. Complete() exits
	// when invoked by the shell, so it must run before flag.Parse.
	completer := &complete.Command{
		Flags: map[string]complete.Predictor{"f": predict.Files("*.json")},
		Sub: map[string]*complete.Command{
			"register": {Flags: map[string]complete.Predictor{"n": predict.Nothing, "pin": predict.Nothing}},
			"login":    {Flags: map[string]complete.Predictor{"pin": predict.Nothing}},
			"credit":   {Flags: cashFlags},
			"debit":    {Flags: cashFlags},
			"lend":     {Flags: loanFlags},
			"borrow":   {Flags: loanFlags},
			"edit":     {Flags: map[string]complete.Predictor{"id": predict.Nothing, "a": predict.Nothing, "m": modes, "desc": predict.Nothing, "tag": predict.Nothing}},
			"delete":   {Flags: map[string]complete.Predictor{"id": predict.Nothing}},
			"settle":   {Flags: map[string]complete.Predictor{"id": predict.Nothing, "m": modes}},
			"tx":       {Flags: map[string]complete.Predictor{"type": predict.Set{"credit", "debit", "lend", "borrow"}, "open": predict.Nothing, "head": predict.Nothing, "tail": predict.Nothing}},
			"summary":  {},
			"spending": {},
			"remind":   {Flags: map[string]complete.Predictor{"d": predict.Nothing}},
			"check":    {Flags: map[string]complete.Predictor{"w": predict.Nothing}},
			"import":   {Flags: map[string]complete.Predictor{"from": predict.Files("*.json")}},
			"topic":    {},
		},
	}
	completer.Complete("pkt")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

var modes = predict.Set{"hand", "bank"}

var cashFlags = map[string]complete.Predictor{
	"a": predict.Nothing, "m": modes, "desc": predict.Nothing, "tag": predict.Nothing,
}

var loanFlags = map[string]complete.Predictor{
	"a": predict.Nothing, "m": modes, "p": predict.Nothing, "desc": predict.Nothing, "remind": predict.Nothing,
}

package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/equity/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
)

func main() {
	// Shell completion for the subcommand names. Complete() is a no-op
	// outside of a completion request.
	completion := &complete.Command{Sub: map[string]*complete.Command{}}
	for _, name := range []string{
		"add", "list", "vest", "tax", "decide", "scenario", "compare", "topic",
		"help", "flags", "commands",
	} {
		completion.Sub[name] = &complete.Command{}
	}
	completion.Complete("eqc")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "documentation")
	commander.Register(commander.FlagsCommand(), "documentation")
	commander.Register(commander.CommandsCommand(), "documentation")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// Package cmd implements the CLI application to manage equity grants.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/etnz/equity"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package calls Register() to declare the subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "grants")
	c.Register(&listCmd{}, "grants")

	c.Register(&vestCmd{}, "reports")
	c.Register(&taxCmd{}, "reports")
	c.Register(&decideCmd{}, "reports")
	c.Register(&scenarioCmd{}, "reports")
	c.Register(&compareCmd{}, "reports")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var grantsFile = flag.String("grants-file", "grants.jsonl", "Path to the grants file (JSONL format)")

// LoadGrants reads every grant from the app grants file.
func LoadGrants() ([]equity.Grant, error) {
	f, err := os.Open(*grantsFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, grants file does not exist, starting from an empty one")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open grants file %q: %w", *grantsFile, err)
	}
	defer f.Close()
	return equity.DecodeGrants(f)
}

// FindGrant returns the grant with the given id. An empty id selects the
// only grant when there is exactly one.
func FindGrant(grants []equity.Grant, id string) (equity.Grant, error) {
	if id == "" {
		if len(grants) == 1 {
			return grants[0], nil
		}
		return equity.Grant{}, fmt.Errorf("-grant is required when the file holds %d grants", len(grants))
	}
	for _, g := range grants {
		if g.ID == id {
			return g, nil
		}
	}
	return equity.Grant{}, fmt.Errorf("no grant %q in %s", id, *grantsFile)
}

// AppendGrant appends a single grant to the app grants file.
func AppendGrant(g equity.Grant) subcommands.ExitStatus {
	f, err := os.OpenFile(*grantsFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening grants file %q: %v\n", *grantsFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := equity.EncodeGrant(f, g); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to grants file %q: %v\n", *grantsFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended grant to %s\n", *grantsFile)
	return subcommands.ExitSuccess
}

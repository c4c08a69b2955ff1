// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
msgdump parses a compiler.properties file and prints its messages, one per
line, with a per-level summary. Useful for eyeballing what a catalogue
update will look like before pointing the server at it.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"

	"codeberg.org/msgrate/msgrate/core/audit"
	"codeberg.org/msgrate/msgrate/core/catalogue"
)

func main() {
	audit.SetDefaultLogger()

	verbose := flag.Bool("v", false, "print the full template text of each message")
	flag.Parse()

	path := flag.Arg(0)
	if path == "" {
		fmt.Fprintf(os.Stderr, "usage: %s [-v] <compiler.properties>\n", filepath.Base(os.Args[0]))
		os.Exit(2)
	}

	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open properties file")
	}
	defer f.Close()

	cat, err := catalogue.Load(f, filepath.Base(path), catalogue.Source{})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse properties file")
	}

	byLevel := make(map[string]int)

	for _, m := range cat.Messages() {
		byLevel[m.Level()]++

		if *verbose {
			fmt.Printf("%s\t%s\n", m.Name, m.String())
		} else {
			fmt.Println(m.Name)
		}
	}

	levels := make([]string, 0, len(byLevel))
	for level := range byLevel {
		levels = append(levels, level)
	}

	sort.Strings(levels)

	fmt.Fprintf(os.Stderr, "%d messages", cat.Len())

	for _, level := range levels {
		fmt.Fprintf(os.Stderr, ", %d %s", byLevel[level], level)
	}

	fmt.Fprintln(os.Stderr)
}

package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// command reads only from input and writes only to output, so commands can
// be piped. The counterparty of a stream update signs the new terms with:
//
//	$ streamcli hash-terms -id 3 -ppb 2 -start 100 -stop 200 < stream.json \
//	    | streamcli sign-terms
//
// args excludes the program and the command name.
type command func(input io.Reader, output io.Writer, args []string) error

var commands = map[string]command{
	"hash-terms":   cmdHashTerms,
	"keyaddr":      cmdKeyaddr,
	"keygen":       cmdKeygen,
	"sign-terms":   cmdSignTerms,
	"verify-terms": cmdVerifyTerms,
	"version":      cmdVersion,
}

// gitHash is set at build time with -ldflags.
var gitHash = "dev"

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "%s is an offline client for token streams.\n\n", os.Args[0])
		usage()
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n\n", os.Args[1])
		usage()
	}
	if err := run(os.Stdin, os.Stdout, os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(os.Stderr, "Usage: %s <command> [<flags>]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n\t%s\n\n", strings.Join(names, "\n\t"))
	fmt.Fprintf(os.Stderr, "Run '%s <command> -help' for the flags of a command.\n", os.Args[0])
	os.Exit(2)
}

func cmdVersion(_ io.Reader, output io.Writer, _ []string) error {
	_, err := fmt.Fprintln(output, gitHash)
	return err
}

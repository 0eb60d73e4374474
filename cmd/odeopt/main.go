// Command odeopt is the CLI entry point spec.md §6 names: it reads a
// request document, runs the coefficient search, and writes the
// resulting artifact file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/jotoba/odeopt/internal/config"
	"github.com/jotoba/odeopt/internal/driver"
	"github.com/jotoba/odeopt/internal/scheme"
)

// Exit codes, per spec.md §6.
const (
	exitSuccess          = 0
	exitBadArgCount      = 1
	exitUnparseable      = 2
	exitMissingRoot      = 3
	exitBadRKSpec        = 4
	exitBadMultistepSpec = 5
	exitUnknownMethod    = 6
	exitUnknownOption    = 7
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("ode", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	threads := fs.Int("threads", 1, "override thread count per rank")
	seed := fs.Int64("seed", 7, "PRNG master seed")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitSuccess
		}
		return exitUnknownOption
	}

	rest := fs.Args()
	if len(rest) < 1 || len(rest) > 2 {
		fmt.Fprintln(os.Stderr, "usage: ode [--threads N] [--seed N] [--help] <request-file> [trace-file]")
		return exitBadArgCount
	}

	requestPath := rest[0]
	f, err := os.Open(requestPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ode: cannot open request file: %v\n", err)
		return exitUnparseable
	}
	defer f.Close()

	req, err := config.LoadXML(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ode: %v\n", err)
		if errors.Is(err, config.ErrMissingRoot) {
			return exitMissingRoot
		}
		return exitUnparseable
	}

	opts := driver.Options{Threads: *threads, Seed: *seed}
	var trace *os.File
	if len(rest) == 2 {
		trace, err = os.Create(rest[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "ode: cannot open trace file: %v\n", err)
			return exitUnparseable
		}
		defer trace.Close()
		opts.Trace = trace
	}

	res, err := driver.Run(req, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ode: %v\n", err)
		return exitCodeFor(req, err)
	}

	out, err := os.Create(res.ArtifactName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ode: cannot create artifact file: %v\n", err)
		return exitUnparseable
	}
	defer out.Close()
	if _, err := out.WriteString(res.ArtifactText); err != nil {
		fmt.Fprintf(os.Stderr, "ode: cannot write artifact file: %v\n", err)
		return exitUnparseable
	}

	fmt.Printf("ode: wrote %s (J*=%.10e)\n", res.ArtifactName, res.JStar)
	return exitSuccess
}

// exitCodeFor maps a driver error to the closest-matching spec.md §6
// exit code, distinguishing RK-family from multi-step-family bad specs
// by the request's own root tag.
func exitCodeFor(req *config.Request, err error) int {
	if req == nil {
		return exitMissingRoot
	}
	if errors.Is(err, scheme.ErrUnknownMethod) {
		return exitUnknownMethod
	}
	if req.Family == "Runge-Kutta" {
		return exitBadRKSpec
	}
	return exitBadMultistepSpec
}

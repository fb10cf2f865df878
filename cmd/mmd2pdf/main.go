package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(run(os.Args, DefaultEnv()))
}

// run dispatches the subcommand and returns a process exit code.
func run(args []string, env *Environment) int {
	command := "convert"
	rest := args[1:]
	if len(rest) > 0 {
		switch rest[0] {
		case "convert", "doctor", "version", "help":
			command = rest[0]
			rest = rest[1:]
		case "--help", "-h":
			printUsage(env.Stdout)
			return ExitSuccess
		case "--version":
			command = "version"
			rest = rest[1:]
		}
	}

	switch command {
	case "version":
		fmt.Fprintf(env.Stdout, "mmd2pdf %s\n", Version)
		return ExitSuccess
	case "help":
		runHelp(rest, env)
		return ExitSuccess
	case "doctor":
		return runDoctorCmd(rest, env)
	}

	flags, positional, err := parseConvertFlags(rest)
	if err != nil {
		return ExitUsage
	}

	configureMaxprocs(flags.common.verbose)

	if err := runConvert(context.Background(), positional, flags, env); err != nil {
		fmt.Fprintln(env.Stderr, "Error:", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// configureMaxprocs aligns GOMAXPROCS with the container CPU quota.
// Error ignored: maxprocs.Set only fails on an invalid GOMAXPROCS env
// var, in which case runtime defaults apply and the program continues.
func configureMaxprocs(verbose bool) {
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}
}

// Command leapscale converts and does arithmetic on UTC and TAI instants.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/leapscale/internal/cli"
	"github.com/roach88/leapscale/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("leapscale: %v", err)
	}

	if err := cli.NewRootCommand(cfg).Execute(); err != nil {
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) || !exitErr.Reported {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}

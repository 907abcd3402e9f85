package main

import (
	"os"

	"github.com/loadout-dev/loadout/cmd"
	"github.com/loadout-dev/loadout/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}

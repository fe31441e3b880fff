// main is the entry point for the longstat CLI.
package main

import (
	"os"

	"github.com/hpcneuro/longstat/cmd"
	"github.com/hpcneuro/longstat/internal/contract"
	"github.com/hpcneuro/longstat/internal/runstore"
)

func main() {
	os.Exit(run())
}

// run wraps the command execution so deferred cleanup survives the exit code.
func run() int {
	cmd.SetRunManager(runstore.Manager)
	defer runstore.CloseStore()

	err := cmd.Execute()

	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("Failed to stop profiling", perr)
	}

	if err != nil {
		contract.LogWarn("Command failed", err)
		return 1
	}
	return 0
}

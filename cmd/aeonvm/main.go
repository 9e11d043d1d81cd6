// Command aeonvm loads a compiled bytecode file and spawns it as the
// first process in a fresh VM instance.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/aeon-lang/aeonvm/aeonlog"
	"github.com/aeon-lang/aeonvm/vm"
)

// drainPollInterval is how often run() checks whether the process table
// has emptied out before reporting exit status.
const drainPollInterval = 10 * time.Millisecond

func main() {
	app := &cli.App{
		Name:  "aeonvm",
		Usage: "run an Aeon bytecode file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "path to a compiled .aeonc bytecode file",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "number of process worker threads",
				Value: 4,
			},
			&cli.IntFlag{
				Name:  "gc-workers",
				Usage: "number of garbage collector threads",
				Value: 1,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn, or error",
				Value: "info",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	log := aeonlog.New("cmd", aeonlog.ParseLevel(c.String("log-level")))

	cfg := vm.DefaultConfig()
	cfg.Workers = c.Int("workers")
	cfg.GCWorkers = c.Int("gc-workers")

	state := vm.New(cfg)
	defer func() {
		if err := state.Shutdown(); err != nil {
			log.Error("shutdown reported errors", "error", err)
		}
	}()

	path := c.String("file")
	compiled, err := state.LoadCode(path)
	if err != nil {
		return fmt.Errorf("aeonvm: failed to load %s: %w", path, err)
	}

	proc := state.Spawn(compiled)
	log.Info("spawned top-level process", "pid", proc.Pid, "file", path)

	state.Drain(drainPollInterval)
	log.Info("process table drained")

	return nil
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sandeepkv93/lins/internal/notify"
	"github.com/spf13/cobra"
)

var headless bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the reminder engine",
	Long:  `Runs the reminder engine. With --headless no terminal UI is shown and every alert goes to the desktop notifier.`,
	RunE:  runEngine,
}

func init() {
	runCmd.Flags().BoolVar(&headless, "headless", false, "run without the terminal UI")
}

func runEngine(cmd *cobra.Command, args []string) error {
	if !headless {
		return runTUI(cmd, args)
	}
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.engine.Start()
	a.log.Infof(ctx, "headless mode, waiting for signal")
	notify.Pump(ctx, a.engine.C(), notify.Pair{Presenter: a.desktop, Cue: a.sound}, a.log)
	a.shutdown()
	return nil
}

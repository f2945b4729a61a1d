package main

import (
	"os"

	"github.com/heroku/color"

	"github.com/debmagic/debmagic/cmd"
	"github.com/debmagic/debmagic/internal/commands"
	"github.com/debmagic/debmagic/internal/logging"
)

func main() {
	// create logger with defaults
	logger := logging.NewLogWithWriters(color.Stdout(), color.Stderr())

	rootCmd := cmd.NewDebmagicCommand(logger)

	ctx := commands.CreateCancellableContext()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/aimoviesearch/moviedata/cmd"
)

// Set with -ldflags "-X main.version=..." in release builds.
var version = "dev"

func main() {
	if err := fang.Execute(
		context.Background(),
		cmd.NewRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// Package main is the entry point for the dex terminal client.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/briangreenhill/pokedex/cmd/dex/commands"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := commands.New(os.Stdout, os.Stderr).Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "dex:", err)
		return 1
	}
	return 0
}

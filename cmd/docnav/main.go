package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/docnav/cmd/docnav/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := commands.Execute(commands.NewGlobal(ctx), os.Args[1:])
	stop()
	os.Exit(code)
}

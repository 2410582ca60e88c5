package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"rankcrawl/cmd/rankcrawl/commands"
)

func main() {
	// interrupting between contests keeps the results produced so far
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commands.ExecuteContext(ctx)
}

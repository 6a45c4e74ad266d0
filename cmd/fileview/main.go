package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"

	_ "github.com/joho/godotenv/autoload"

	"fileview/internal/cli"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(cli.ExitFailure)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Execute(ctx, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

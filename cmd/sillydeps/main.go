package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/sillydeps/internal/cli"
	"github.com/matzehuels/sillydeps/internal/config"
	"github.com/matzehuels/sillydeps/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if stderrors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, "Error:", errors.UserMessage(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	c := cli.New(os.Stderr, cli.LogInfo, cfg)
	root := c.RootCommand()
	root.SilenceErrors = true

	return root.ExecuteContext(ctx)
}

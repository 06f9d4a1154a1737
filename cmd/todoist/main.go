package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"golang.org/x/term"

	"github.com/taskwise/todoist-cli/internal/adapters/driven/config"
	tokenexchange "github.com/taskwise/todoist-cli/internal/adapters/driven/oauth"
	"github.com/taskwise/todoist-cli/internal/adapters/driven/secrets"
	"github.com/taskwise/todoist-cli/internal/adapters/driven/todoist"
	"github.com/taskwise/todoist-cli/internal/adapters/driving/cli"
	callback "github.com/taskwise/todoist-cli/internal/adapters/driving/oauth"
	"github.com/taskwise/todoist-cli/internal/core/ports/driven"
	"github.com/taskwise/todoist-cli/internal/core/services"
	"github.com/taskwise/todoist-cli/internal/logger"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store, err := secrets.NewStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	configDir, err := config.DefaultConfigDir()
	if err != nil {
		logger.Warn("config directory unavailable: %v", err)
	}

	var settings driven.ConfigStore
	if configDir != "" {
		if s, err := config.OpenSettings(configDir); err != nil {
			logger.Warn("settings unavailable: %v", err)
		} else {
			settings = s
		}
	}

	creds := config.NewFileCredentials(configDir)

	flow := &services.AuthFlow{
		Credentials: creds,
		Store:       store,
		Exchanger:   &tokenexchange.Exchanger{},
		Verifier:    &todoist.TokenProbe{},
		NewReceiver: func(port int, expectedState string) services.CodeReceiver {
			return callback.NewCallbackServer(port, expectedState)
		},
		OpenBrowser: callback.OpenBrowser,
		Input:       os.Stdin,
		Output:      os.Stdout,
		ErrOutput:   os.Stderr,
		Interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}

	cli.Wire(flow, store, settings, creds)
	cli.SetVersion(version)
	cli.Execute(ctx)
}

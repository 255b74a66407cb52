// Command bot runs the weather chat bot: it connects to the Discord gateway,
// registers the slash commands, and serves the operational HTTP endpoints.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sean-rowe/weather-bot/internal/app"
	"github.com/sean-rowe/weather-bot/internal/version"
)

func main() {
	application, err := app.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	info := version.Get()
	ctx := context.Background()

	if err := application.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start weather bot %s: %v\n", info.Version, err)
		os.Exit(1)
	}

	application.WaitForShutdown()
	application.Stop()
}

// main.go - Einstiegspunkt der aggregates CLI
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ollama/aggregates/cmd"
	"github.com/ollama/aggregates/envconfig"
	"github.com/ollama/aggregates/logutil"
)

func main() {
	slog.SetDefault(logutil.NewLogger(os.Stderr, envconfig.LogLevel()))

	if err := cmd.NewCLI().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

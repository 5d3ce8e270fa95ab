package main

import (
	"fmt"
	"os"

	"github.com/diillson/aws-cost-watch/internal/adapter/driving/cli"
	"github.com/diillson/aws-cost-watch/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitCode(err))
	}
}

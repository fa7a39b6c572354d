// Command ledgerctl records expenses and monthly budgets and reports on them.
package main

import (
	"context"
	"os"

	appcli "ledgerctl/internal/cli"
)

func main() {
	appcli.LoadEnvFile()

	ctx, stop := appcli.GracefulShutdown(context.Background())
	err := newApp(os.Stdout, os.Stderr).RunContext(ctx, os.Args)
	stop()
	if err != nil {
		appcli.Fatal(err)
	}
}

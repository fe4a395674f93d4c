package main

import (
	"context"

	"beerwatch-backend/cmd/beerwatch/commands"
	"beerwatch-backend/lib/serviceutil"
	"beerwatch-backend/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()

	telemetry.InitSlog(false)
	t, err := telemetry.SetupFromEnv(ctx, "beerwatch")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer t.Shutdown(context.Background())

	commands.ExecuteContext(ctx)
}

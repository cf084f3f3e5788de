package main

import (
	"courseprobe/cmd/courseprobe/commands"
	"courseprobe/lib/serviceutil"
	"courseprobe/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()
	tel, err := telemetry.SetupFromEnv(ctx, "courseprobe")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer tel.Shutdown(ctx)
	telemetry.InstrumentPerfStats(ctx)

	commands.ExecuteContext(ctx)
}

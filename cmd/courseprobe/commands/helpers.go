package commands

import (
	"context"
	"courseprobe/lib/configutil"
	"courseprobe/lib/extract"
	"courseprobe/lib/outcomestore"
	"courseprobe/lib/platforms/coursera"
	"courseprobe/lib/queryclient"
	"courseprobe/lib/render"
	"courseprobe/lib/restyutil"
	"courseprobe/lib/serviceutil"
	"fmt"
	"log/slog"
	"os"
)

type Config struct {
	BaseUrl   string `json:"base_url"`
	UserAgent string `json:"user_agent"`
}

func newClient() *coursera.Client {
	cfg, err := configutil.ReadConfig[Config]("courseprobe.json5")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to read config", err)
	}

	client, err := coursera.NewClient(coursera.ClientOptions{
		BaseUrl:   cfg.BaseUrl,
		UserAgent: cfg.UserAgent,
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize client", err)
	}
	if flagDumpHttp != "" {
		client.SetInstrumentOutput(restyutil.NewFilesystemOutput(flagDumpHttp))
	}
	return client
}

// finishOutcome persists the outcome as requested by the flags and
// reports failures. It returns true when the caller may extract.
func finishOutcome(ctx context.Context, operation, endpoint string, out queryclient.Outcome) bool {
	if flagOutput != "" {
		encoded, err := out.Encode()
		if err != nil {
			serviceutil.Fatal("failed to serialize outcome", err)
		}
		err = os.WriteFile(flagOutput, encoded, 0644)
		if err != nil {
			slog.Error("failed to save outcome", "file", flagOutput, "err", err)
		} else {
			fmt.Printf("Results saved to %s\n", flagOutput)
		}
	}

	if flagDb != "" {
		store, err := outcomestore.Open(flagDb)
		if err != nil {
			serviceutil.Fatal("failed to open probe history", err)
		}
		defer store.Close()
		_, err = store.Save(ctx, outcomestore.ProbeRecord{
			Operation: operation,
			Endpoint:  endpoint,
			Outcome:   out,
		})
		if err != nil {
			serviceutil.Fatal("failed to record outcome", err)
		}
	}

	if !out.IsSuccess() {
		render.Diagnostic(os.Stdout, out)
		return false
	}
	return true
}

func extractRecords(spec extract.Spec, body any) []extract.Record {
	ex, err := extract.New(spec)
	if err != nil {
		serviceutil.Fatal("failed to compile extraction spec", err)
	}
	return ex.Extract(body)
}

// reportedTotal digs the upstream-reported result count out of the
// body, falling back to the local record count.
func reportedTotal(spec extract.Spec, body any, fallback int) int {
	recs := extractRecords(spec, body)
	if len(recs) == 0 {
		return fallback
	}
	if total, ok := recs[0]["total"].(float64); ok {
		return int(total)
	}
	return fallback
}

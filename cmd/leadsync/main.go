package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go-crm-leads/internal/app"
	"go-crm-leads/internal/features/leadsync"

	"go.uber.org/fx"
)

func main() {
	mode := flag.String("mode", string(leadsync.ModeScheduled), "Sync mode: scheduled, manual or test")
	hours := flag.Int("hours", leadsync.DefaultManualHours, "Lookback window in hours for manual mode")
	timeout := flag.Duration("timeout", 10*time.Minute, "Overall time limit")
	flag.Parse()

	if *hours < 1 || *hours > leadsync.MaxManualHours {
		log.Fatalf("Error: -hours must be between 1 and %d", leadsync.MaxManualHours)
	}

	var service leadsync.LeadSyncService
	fxApp := fx.New(
		app.Core,
		fx.NopLogger,
		fx.Populate(&service),
	)

	startCtx, cancel := context.WithTimeout(context.Background(), fxApp.StartTimeout())
	defer cancel()
	if err := fxApp.Start(startCtx); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	ctx, cancelRun := context.WithTimeout(context.Background(), *timeout)
	result, err := run(ctx, service, leadsync.Mode(*mode), *hours)
	cancelRun()

	stopCtx, cancelStop := context.WithTimeout(context.Background(), fxApp.StopTimeout())
	defer cancelStop()
	if stopErr := fxApp.Stop(stopCtx); stopErr != nil {
		log.Printf("Shutdown error: %v", stopErr)
	}

	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(out))
	if !result.Success {
		os.Exit(1)
	}
}

func run(ctx context.Context, service leadsync.LeadSyncService, mode leadsync.Mode, hours int) (*leadsync.SyncResult, error) {
	switch mode {
	case leadsync.ModeScheduled:
		return service.RunScheduledSync(ctx), nil
	case leadsync.ModeManual:
		return service.RunManualFetch(ctx, hours), nil
	case leadsync.ModeTest:
		return service.RunConnectionTest(ctx), nil
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
}

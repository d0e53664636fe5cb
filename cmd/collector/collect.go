package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/medialens/collector/internal/models"
)

const collectPollInterval = 200 * time.Millisecond

func newCollectCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "collect <target>",
		Short: "Run one collection pass for a target and wait for it to finish",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollect(cmd.Context(), v, args[0])
		},
	}
}

func runCollect(ctx context.Context, v *viper.Viper, target string) error {
	a, err := newApp(ctx, v)
	if err != nil {
		return err
	}
	defer a.Close()

	timeoutSec, err := a.cfg.GetInt("processing.timeout_seconds", 300)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutSec)*time.Second)
	defer cancel()

	dispatched, err := a.collection.Collect(ctx, target)
	if err != nil {
		return err
	}
	fmt.Printf("dispatched %d collection runs for %q\n", dispatched, target)

	if err := waitForRuns(ctx, a); err != nil {
		return err
	}

	failed := 0
	for _, status := range a.collection.Statuses() {
		if status.Status == models.CollectorStatusError {
			failed++
			fmt.Printf("  %s: %s (%s)\n", status.Collector, status.Status, status.Error)
			continue
		}
		fmt.Printf("  %s: %s\n", status.Collector, status.Status)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d collection runs failed", failed, dispatched)
	}
	return nil
}

// waitForRuns polls collector statuses until no run is in flight. The runs
// themselves carry per-run timeouts; ctx bounds the whole pass.
func waitForRuns(ctx context.Context, a *app) error {
	ticker := time.NewTicker(collectPollInterval)
	defer ticker.Stop()

	for {
		inFlight := false
		for _, status := range a.collection.Statuses() {
			if status.Status == models.CollectorStatusCollecting {
				inFlight = true
				break
			}
		}
		if !inFlight {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

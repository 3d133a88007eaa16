package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tableside/internal/config"
	"tableside/internal/kitchen"
)

const reportInterval = time.Minute

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().
		Str("queue", cfg.Kitchen.Queue).
		Int("workers", cfg.Kitchen.Workers).
		Msg("starting kitchen consumer")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tally := kitchen.NewTally()
	consumer, err := kitchen.NewConsumer(cfg.Kitchen.URL, cfg.Kitchen.Queue, cfg.Kitchen.Workers, tally, logger)
	if err != nil {
		return err
	}

	go func() {
		ticker := time.NewTicker(reportInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				tickets, dishes := tally.Snapshot()
				ev := logger.Info().Int64("tickets", tickets)
				if len(dishes) > 0 {
					ev = ev.Str("top_dish", dishes[0].Name).Int64("top_quantity", dishes[0].Quantity)
				}
				ev.Msg("kitchen tally")
			}
		}
	}()

	if err := consumer.Run(ctx); err != nil {
		return fmt.Errorf("kitchen consumer stopped: %w", err)
	}

	tickets, _ := tally.Snapshot()
	logger.Info().Int64("tickets", tickets).Msg("kitchen consumer stopped")
	return nil
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"StockSentinel/internal/notifier"
	"StockSentinel/internal/scheduler"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the overview scheduler and the Telegram bot until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info().Msg("StockSentinel starting")
		svc := newService()

		// Context for graceful shutdown
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var tn *notifier.TelegramNotifier
		var n scheduler.Notifier
		if cfg.TelegramEnabled() {
			tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID,
				notifier.WithProxy(cfg.Proxy),
				notifier.WithLogger(logger.Component("telegram")),
			)
			n = tn
		} else {
			logger.Warn().Msg("telegram not configured, running without notifications")
		}

		sched := scheduler.NewScheduler(ctx, svc, n, cfg.Overview.Symbols, logger.Component("scheduler"))
		if err := sched.Register(cfg.Schedule.OverviewCron); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()

		if tn != nil {
			go tn.StartPolling(ctx, sched.HandleCommand)
			logger.Info().Msg("telegram polling started")
		}

		if os.Getenv("RUN_ON_START") == "true" {
			logger.Info().Msg("RUN_ON_START enabled, refreshing overview now")
			go sched.RunOverviewNow()
		}

		logger.Info().Msg("StockSentinel is running, press Ctrl+C to stop")

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		logger.Info().Msg("shutdown signal received, stopping")
		cancel()
		return nil
	},
}

package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"StockSentinel/internal/analysis"
	"StockSentinel/internal/common"
	"StockSentinel/internal/notifier"
)

// Notifier delivers formatted messages. *notifier.TelegramNotifier implements it.
type Notifier interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

const sendRetries = 3

// Scheduler runs the periodic overview refresh and answers bot commands.
type Scheduler struct {
	Cron     *cron.Cron
	Service  *analysis.Service
	Notifier Notifier // nil disables delivery
	Symbols  []string
	Ctx      context.Context

	logger *common.Logger
	now    func() time.Time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, svc *analysis.Service, n Notifier, symbols []string, logger *common.Logger) *Scheduler {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Service:  svc,
		Notifier: n,
		Symbols:  symbols,
		Ctx:      ctx,
		logger:   logger,
		now:      time.Now,
	}
}

// Register schedules the overview refresh.
func (s *Scheduler) Register(overviewCron string) error {
	if _, err := s.Cron.AddFunc(overviewCron, s.overviewTask); err != nil {
		return fmt.Errorf("register overview task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.logger.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.logger.Info().Msg("scheduler stopped")
}

// RunOverviewNow executes the overview refresh immediately (for RUN_ON_START).
func (s *Scheduler) RunOverviewNow() {
	s.overviewTask()
}

// overviewTask refreshes every configured symbol, which also warms the
// cache, and pushes the digest.
func (s *Scheduler) overviewTask() {
	s.logger.Info().Int("symbols", len(s.Symbols)).Msg("running overview refresh")
	entries := s.Service.Overview(s.Ctx, s.Symbols)
	s.trySend(notifier.FormatOverview(entries, s.now()))
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}
	// "/stock@SentinelBot" in group chats
	name, _, _ := strings.Cut(strings.ToLower(fields[0]), "@")
	args := fields[1:]

	switch name {
	case "/overview":
		return notifier.FormatOverview(s.Service.Overview(ctx, s.Symbols), s.now())
	case "/stock":
		if len(args) == 0 {
			return "Usage: /stock SYMBOL"
		}
		a, err := s.Service.Detail(ctx, args[0])
		if errors.Is(err, analysis.ErrNotFound) {
			return fmt.Sprintf("No data for %s.", strings.ToUpper(args[0]))
		}
		if err != nil {
			s.logger.Error().Err(err).Str("symbol", args[0]).Msg("detail command")
			return "Request failed, try again later."
		}
		return notifier.FormatDetail(a)
	case "/search":
		query := strings.Join(args, " ")
		return notifier.FormatSearch(query, s.Service.Search(ctx, query))
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		s.logger.Debug().Msg("notifier disabled, digest not sent")
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, sendRetries); err != nil {
		s.logger.Error().Err(err).Msg("send notification")
	}
}

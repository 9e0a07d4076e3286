// Package app assembles the bot: config in, wired services out, with
// ordered startup and shutdown.
package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"festbot/internal/config"
	"festbot/internal/greeter"
	"festbot/internal/holiday"
	"festbot/internal/ledger"
	"festbot/internal/llm"
	kit "festbot/internal/transport"
	"festbot/internal/transport/telegram"
	"festbot/pkg/logx"
)

const updateChanSize = 64

type App struct {
	cfg *config.Config

	logSvc  *logx.Service
	log     logx.Logger
	adapter *telegram.Adapter
	store   ledger.Store
	greeter *greeter.Service

	owners map[int64]bool

	updates chan kit.Update
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

func New(cfg *config.Config) (*App, error) {
	logSvc, log := logx.New(logx.Config{
		Level:   cfg.Logging.Level,
		Console: cfg.Logging.Console,
		File: logx.FileConfig{
			Enabled: cfg.Logging.File.Enabled,
			Path:    cfg.Logging.File.Path,
		},
		Telegram: logx.TelegramConfig{
			Enabled:    cfg.Logging.Telegram.Enabled,
			ThreadID:   cfg.Logging.Telegram.ThreadID,
			MinLevel:   cfg.Logging.Telegram.MinLevel,
			RatePerSec: cfg.Logging.Telegram.RatePerSec,
		},
	}, nil)

	pollTimeout, err := config.ParseDurationOrDefault("telegram.poll_timeout", cfg.Telegram.PollTimeout, 10*time.Second)
	if err != nil {
		logSvc.Close()
		return nil, err
	}
	adapter, err := telegram.New(telegram.Config{
		Token:       cfg.Telegram.Token,
		PollTimeout: pollTimeout,
	}, log.With(logx.String("comp", "telegram")))
	if err != nil {
		logSvc.Close()
		return nil, err
	}
	logSvc.SetSender(adapter)
	if chatID, threadID, ok := parseGroupLog(cfg.Telegram.GroupLog); ok {
		logSvc.SetTelegramTarget(chatID, threadID)
	}

	storageCfg := ledger.Config{}
	if cfg.Storage != nil {
		busy, err := config.ParseDurationField("storage.busy_timeout", cfg.Storage.BusyTimeout)
		if err != nil {
			logSvc.Close()
			return nil, err
		}
		storageCfg = ledger.Config{
			Driver:      cfg.Storage.Driver,
			Path:        cfg.Storage.Path,
			BusyTimeout: busy,
		}
	}
	store, err := ledger.Open(storageCfg, log.With(logx.String("comp", "ledger")))
	if err != nil {
		logSvc.Close()
		return nil, err
	}

	cal, err := buildCalendar(cfg.Greeter, log)
	if err != nil {
		store.Close()
		logSvc.Close()
		return nil, err
	}

	gen := llm.New(llm.Config{
		BaseURL:   cfg.Greeter.Provider.BaseURL,
		Model:     cfg.Greeter.Provider.Model,
		APIKeyEnv: cfg.Greeter.Provider.APIKeyEnv,
	}, log.With(logx.String("comp", "llm")))

	settings := greeter.SettingsFromConfig(cfg.Greeter, log)
	greet, err := greeter.New(log.With(logx.String("comp", "greeter")), settings, cal, store, gen, adapter)
	if err != nil {
		store.Close()
		logSvc.Close()
		return nil, err
	}

	owners := make(map[int64]bool, len(cfg.Telegram.OwnerUserIDs))
	for _, id := range cfg.Telegram.OwnerUserIDs {
		owners[id] = true
	}

	return &App{
		cfg:     cfg,
		logSvc:  logSvc,
		log:     log,
		adapter: adapter,
		store:   store,
		greeter: greet,
		owners:  owners,
	}, nil
}

// buildCalendar merges custom config holidays and the optional ICS import
// over the built-in defaults. A missing or broken ICS file degrades to a
// warning; the configured holidays still apply.
func buildCalendar(cfg config.GreeterConfig, log logx.Logger) (*holiday.Calendar, error) {
	entries := make([]holiday.ConfigEntry, 0, len(cfg.CustomHolidays))
	for _, h := range cfg.CustomHolidays {
		entries = append(entries, holiday.ConfigEntry{
			Token:       h.Token,
			Name:        h.Name,
			Month:       h.Month,
			Day:         h.Day,
			LengthDays:  h.LengthDays,
			Aliases:     h.Aliases,
			Description: h.Description,
		})
	}
	custom := holiday.FromConfig(entries, log)

	if path := strings.TrimSpace(cfg.HolidaysICS); path != "" {
		icsDefs, err := holiday.LoadICS(path, log)
		if err != nil {
			log.Warn("ics import failed; continuing without it", logx.String("path", path), logx.Err(err))
		} else {
			custom = append(custom, icsDefs...)
		}
	}
	return holiday.NewCalendar(custom), nil
}

// parseGroupLog parses "chatID" or "chatID:threadID".
func parseGroupLog(raw string) (chatID int64, threadID int, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, 0, false
	}
	idPart, threadPart, hasThread := strings.Cut(raw, ":")
	chatID, err := strconv.ParseInt(strings.TrimSpace(idPart), 10, 64)
	if err != nil {
		return 0, 0, false
	}
	if hasThread {
		threadID, _ = strconv.Atoi(strings.TrimSpace(threadPart))
	}
	return chatID, threadID, true
}

func (a *App) Start(ctx context.Context) error {
	a.updates = make(chan kit.Update, updateChanSize)
	a.stopCh = make(chan struct{})

	if err := a.adapter.Start(ctx, a.updates); err != nil {
		return fmt.Errorf("start telegram: %w", err)
	}
	if err := a.greeter.Start(ctx); err != nil {
		return fmt.Errorf("start greeter: %w", err)
	}

	a.wg.Add(1)
	go a.dispatchLoop(ctx)

	// Best-effort: Telegram command menu registration never blocks startup.
	go func() {
		mctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := a.adapter.UpdateMenuCommands(mctx, menuCommands()); err != nil {
			a.log.Warn("menu command registration failed", logx.Err(err))
		}
	}()

	a.log.Info("bot started")
	return nil
}

// Stop shuts components down in reverse dependency order. Each step gets the
// remaining deadline; a failed step is logged and shutdown continues.
func (a *App) Stop(ctx context.Context) error {
	close(a.stopCh)
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}

	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"greeter", a.greeter.Stop},
		{"telegram", a.adapter.Stop},
		{"ledger", func(context.Context) error { return a.store.Close() }},
		{"logging", func(context.Context) error { return a.logSvc.Close() }},
	}

	var firstErr error
	for _, st := range steps {
		if err := st.fn(ctx); err != nil {
			a.log.Warn("shutdown step failed", logx.String("step", st.name), logx.Err(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (a *App) dispatchLoop(ctx context.Context) {
	defer a.wg.Done()
	for {
		select {
		case <-a.stopCh:
			return
		case up := <-a.updates:
			a.handleUpdate(ctx, up)
		}
	}
}

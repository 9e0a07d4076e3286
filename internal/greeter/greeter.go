// Package greeter owns the scheduling and delivery of holiday greetings:
// it decides when a tick fires, which holidays are in effect, which chats
// receive text, and records every confirmed delivery in the ledger.
package greeter

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"festbot/internal/holiday"
	"festbot/internal/ledger"
	"festbot/internal/llm"
	kit "festbot/internal/transport"
	"festbot/pkg/logx"
)

// Generator produces greeting text for one occurrence. llm.Client satisfies
// this; tests substitute fakes.
type Generator interface {
	Configured() bool
	Generate(ctx context.Context, req llm.Request) (string, error)
}

// Sender is the outbound slice of the transport adapter the greeter needs.
type Sender interface {
	SendText(ctx context.Context, to kit.ChatTarget, text string, opt *kit.SendOptions) (kit.MessageRef, error)
}

type Service struct {
	log      logx.Logger
	settings Settings
	cal      *holiday.Calendar
	store    ledger.Store
	gen      Generator
	sender   Sender

	cronSched cron.Schedule // nil unless a cron spec is configured

	mu      sync.Mutex
	targets []string

	stopCh chan struct{}
	wg     sync.WaitGroup

	now func() time.Time
}

func New(log logx.Logger, settings Settings, cal *holiday.Calendar, store ledger.Store, gen Generator, sender Sender) (*Service, error) {
	if log.IsZero() {
		log = logx.Nop()
	}
	s := &Service{
		log:      log,
		settings: settings,
		cal:      cal,
		store:    store,
		gen:      gen,
		sender:   sender,
		now:      time.Now,
	}

	if settings.CronSpec != "" {
		parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
		sched, err := parser.Parse(settings.CronSpec)
		if err != nil {
			return nil, fmt.Errorf("parse cron %q: %w", settings.CronSpec, err)
		}
		s.cronSched = sched
	}

	s.targets = mergeTargets(settings.Targets, store.Recipients())
	return s, nil
}

// mergeTargets reconciles configured targets with chats the ledger has seen
// before: a chat greeted in a previous run keeps receiving greetings even if
// it was added to the ledger by a manual trigger.
func mergeTargets(configured, known []string) []string {
	seen := make(map[string]bool, len(configured))
	out := append([]string(nil), configured...)
	for _, t := range configured {
		seen[t] = true
	}
	sort.Strings(known)
	for _, t := range known {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// Targets returns a snapshot of the current recipient list.
func (s *Service) Targets() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.targets...)
}

// AddTarget registers a chat for future scheduled greetings.
func (s *Service) AddTarget(chatID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.targets {
		if t == chatID {
			return
		}
	}
	s.targets = append(s.targets, chatID)
}

// ManualAllowed reports whether the manual trigger command is enabled.
func (s *Service) ManualAllowed() bool { return s.settings.AllowManual }

func (s *Service) Start(ctx context.Context) error {
	s.stopCh = make(chan struct{})
	s.wg.Add(2)
	go s.runLoop(ctx)
	go s.pruneLoop()
	s.log.Info("greeter started",
		logx.String("tz", s.settings.Location.String()),
		logx.Int("targets", len(s.Targets())),
		logx.Bool("cron", s.cronSched != nil),
	)
	return nil
}

func (s *Service) Stop(ctx context.Context) error {
	close(s.stopCh)
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

package greeter

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"festbot/internal/holiday"
	"festbot/internal/llm"
	kit "festbot/internal/transport"
	"festbot/pkg/logx"
)

type deliveryOutcome int

const (
	outcomeSent deliveryOutcome = iota
	outcomeSkipped
	outcomeFailed
)

// runTick delivers greetings for every holiday in effect on the tick's date.
// Chats are processed sequentially; one failing chat never blocks the rest.
func (s *Service) runTick(ctx context.Context, now time.Time) {
	today := now.In(s.settings.Location)
	occs := s.holidaysFor(today)
	if len(occs) == 0 {
		s.log.Debug("tick: no holidays today", logx.Time("date", today))
		return
	}
	chats := s.filterChats(s.Targets())
	if len(chats) == 0 {
		s.log.Warn("no eligible chats; greetings will not be sent")
		return
	}
	s.log.Info("greeting tick",
		logx.Int("holidays", len(occs)),
		logx.Int("chats", len(chats)),
	)
	for _, occ := range occs {
		for _, chat := range chats {
			switch s.deliverOne(ctx, occ, chat, now, false) {
			case outcomeSent:
				s.log.Info("greeting sent", logx.String("holiday", occ.Definition.Name), logx.String("chat", chat))
			case outcomeSkipped:
				s.log.Debug("greeting skipped", logx.String("holiday", occ.Definition.Name), logx.String("chat", chat))
			case outcomeFailed:
				s.log.Warn("greeting failed", logx.String("holiday", occ.Definition.Name), logx.String("chat", chat))
			}
		}
	}
}

// holidaysFor returns today's deliverable occurrences: in first-day mode only
// day one of a multi-day window counts, in every-day mode every day does.
func (s *Service) holidaysFor(date time.Time) []holiday.Occurrence {
	occs := s.cal.HolidaysOn(date)
	if s.settings.RepeatMode != "first-day" {
		return occs
	}
	kept := occs[:0]
	for _, occ := range occs {
		if occ.IsFirstDay() {
			kept = append(kept, occ)
		}
	}
	return kept
}

// deliverOne sends one greeting to one chat. The ledger is updated only
// after the transport confirms the send, so a failed delivery stays due.
// bypassDedup skips both the cooldown check and the ledger write.
func (s *Service) deliverOne(ctx context.Context, occ holiday.Occurrence, chatID string, now time.Time, bypassDedup bool) deliveryOutcome {
	key := occ.Key()
	if !bypassDedup && !s.store.ShouldSend(chatID, key, now, s.settings.Cooldown()) {
		return outcomeSkipped
	}

	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		s.log.Warn("invalid chat id", logx.String("chat", chatID))
		return outcomeFailed
	}

	text := s.generateText(ctx, occ)
	if _, err := s.sender.SendText(ctx, kit.ChatTarget{ChatID: id}, text, nil); err != nil {
		s.log.Warn("send failed", logx.String("chat", chatID), logx.Err(err))
		return outcomeFailed
	}

	if !bypassDedup {
		if err := s.store.MarkSent(chatID, key, now); err != nil {
			s.log.Warn("ledger write failed", logx.String("chat", chatID), logx.String("key", key), logx.Err(err))
		}
	}
	return outcomeSent
}

// generateText asks the generator with bounded retries, then falls back to a
// template message. It always returns sendable text.
func (s *Service) generateText(ctx context.Context, occ holiday.Occurrence) string {
	if s.gen != nil && s.gen.Configured() {
		attempts := s.settings.MaxRetries + 1
		for i := 0; i < attempts; i++ {
			text, err := s.gen.Generate(ctx, llm.Request{
				Occurrence: occ.Payload(),
				Style:      s.settings.Style,
			})
			if err == nil && text != "" {
				return text
			}
			s.log.Warn("generation attempt failed",
				logx.String("holiday", occ.Definition.Name),
				logx.Int("attempt", i+1),
				logx.Err(err),
			)
		}
	}
	return s.fallbackMessage(occ)
}

// ManualSend delivers today's greetings to one chat on demand, honoring
// both the chat filter and the cooldown, and reports a per-holiday outcome
// line.
func (s *Service) ManualSend(ctx context.Context, chatID string) []string {
	return s.sendNow(ctx, chatID, false)
}

// DebugSend delivers today's greetings regardless of cooldown state and
// without recording the delivery, so scheduled runs are unaffected.
func (s *Service) DebugSend(ctx context.Context, chatID string) []string {
	return s.sendNow(ctx, chatID, true)
}

func (s *Service) sendNow(ctx context.Context, chatID string, bypassDedup bool) []string {
	now := s.now()
	occs := s.holidaysFor(now.In(s.settings.Location))
	if len(occs) == 0 {
		return []string{"今天没有正在进行的节日。"}
	}
	// The manual path honors the chat filter; only the debug path may reach
	// an excluded chat.
	if !bypassDedup && len(s.filterChats([]string{chatID})) == 0 {
		return []string{"当前会话不在允许列表内，无法发送节日祝福。"}
	}
	s.AddTarget(chatID)
	var lines []string
	for _, occ := range occs {
		switch s.deliverOne(ctx, occ, chatID, now, bypassDedup) {
		case outcomeSent:
			lines = append(lines, "已发送："+occ.Definition.Name)
		case outcomeSkipped:
			lines = append(lines, "已跳过（冷却中）："+occ.Definition.Name)
		case outcomeFailed:
			lines = append(lines, "发送失败："+occ.Definition.Name)
		}
	}
	return lines
}

// TodayReport describes today's holiday windows without sending anything.
func (s *Service) TodayReport() string {
	today := s.now().In(s.settings.Location)
	occs := s.cal.HolidaysOn(today)
	if len(occs) == 0 {
		return "今天没有正在进行的节日。"
	}
	var b strings.Builder
	b.WriteString("今天的节日：")
	for _, occ := range occs {
		fmt.Fprintf(&b, "\n- %s（第%d/%d天）", occ.Definition.Name, occ.DayOffset()+1, occ.Definition.Duration())
	}
	return b.String()
}

package greeter

import (
	"context"
	"time"

	"festbot/pkg/logx"
)

// nextTrigger computes the next scheduled tick strictly after now. With a
// cron spec the cron schedule decides; otherwise the trigger is the daily
// HH:MM wall time in the configured zone, today if still ahead, else
// tomorrow. Building the candidate with time.Date keeps the wall time stable
// across DST transitions.
func (s *Service) nextTrigger(now time.Time) time.Time {
	now = now.In(s.settings.Location)
	if s.cronSched != nil {
		return s.cronSched.Next(now)
	}
	y, m, d := now.Date()
	candidate := time.Date(y, m, d, s.settings.TriggerHour, s.settings.TriggerMinute, 0, 0, s.settings.Location)
	if candidate.After(now) {
		return candidate
	}
	return time.Date(y, m, d+1, s.settings.TriggerHour, s.settings.TriggerMinute, 0, 0, s.settings.Location)
}

func (s *Service) runLoop(ctx context.Context) {
	defer s.wg.Done()
	for {
		next := s.nextTrigger(s.now())
		s.log.Debug("next greeting tick", logx.Time("at", next))
		timer := time.NewTimer(time.Until(next))
		select {
		case <-s.stopCh:
			timer.Stop()
			return
		case <-timer.C:
			s.runTick(ctx, s.now())
		}
	}
}

func (s *Service) pruneLoop() {
	defer s.wg.Done()
	s.pruneOnce()
	ticker := time.NewTicker(PruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.pruneOnce()
		}
	}
}

func (s *Service) pruneOnce() {
	cutoff := s.now().Add(-RetentionWindow)
	if err := s.store.PruneBefore(cutoff); err != nil {
		s.log.Warn("ledger prune failed", logx.Err(err))
	}
}

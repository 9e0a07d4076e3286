package greeter

import (
	"math/rand/v2"
	"strconv"
	"strings"

	"festbot/internal/holiday"
)

// defaultFallbacks are used when no provider is configured, generation keeps
// failing, or the config supplies no templates of its own.
var defaultFallbacks = []string{
	"{holiday}快乐！愿大家平安顺遂，万事胜意。",
	"今天是{date}，祝各位{holiday}快乐，阖家幸福！",
	"{year}年的{holiday}到了，祝大家节日愉快，心想事成！",
}

func (s *Service) fallbackMessage(occ holiday.Occurrence) string {
	pool := s.settings.FallbackMessages
	if len(pool) == 0 {
		pool = defaultFallbacks
	}
	return renderTemplate(pool[rand.IntN(len(pool))], occ)
}

// renderTemplate substitutes the {holiday}, {date} and {year} placeholders.
// Unknown placeholders pass through untouched.
func renderTemplate(tmpl string, occ holiday.Occurrence) string {
	return strings.NewReplacer(
		"{holiday}", occ.Definition.Name,
		"{date}", occ.Date.Format("01月02日"),
		"{year}", strconv.Itoa(occ.Date.Year()),
	).Replace(tmpl)
}

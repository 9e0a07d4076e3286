package greeter

import "strings"

// filterChats applies the configured chat filter to a recipient list.
// Whitelist keeps only matching chats, blacklist drops them, disabled passes
// everything through unchanged.
func (s *Service) filterChats(chats []string) []string {
	if s.settings.FilterMode == "disabled" {
		return chats
	}
	var kept []string
	for _, chat := range chats {
		matched := matchesFilter(chat, s.settings.FilterList)
		if (s.settings.FilterMode == "whitelist") == matched {
			kept = append(kept, chat)
		}
	}
	return kept
}

// matchesFilter reports whether chatID matches any filter entry. An entry
// matches when it equals the chat id outright, or when its trailing
// ":"-separated segment does, so fully-qualified session strings like
// "telegram:group:12345" keep working as filter entries.
func matchesFilter(chatID string, entries []string) bool {
	for _, e := range entries {
		if e == chatID {
			return true
		}
		if idx := strings.LastIndex(e, ":"); idx >= 0 && e[idx+1:] == chatID {
			return true
		}
	}
	return false
}

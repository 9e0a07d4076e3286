package llm

import (
	"regexp"
	"strings"
)

// Models with visible reasoning sometimes prefix their output with a
// "thinking" section or wrap the usable text behind an "answer:" marker.
// Sanitize strips both. Kept separate from extraction so it can be tested
// against plain strings.
var (
	thoughtPrefixPattern = regexp.MustCompile(`(?i)^\s*(?:思考|分析|推理|思路|思绪|chain of thought|analysis|reasoning)[:：]`)
	answerSplitPattern   = regexp.MustCompile(`(?i)(^|\n)\s*(?:答复|回答|回复|最终回答|最终答复|结论|final answer|answer)[:：]\s*`)
	answerPrefixPattern  = regexp.MustCompile(`(?i)^\s*(?:答复|回答|回复|最终回答|最终答复|结论|final answer|answer)[:：]\s*`)
)

// Sanitize cleans generated text: keeps only what follows the last
// "answer:"-style marker, drops "reasoning:"-prefixed lines and strips
// leftover answer prefixes. Falls back to the trimmed input when cleanup
// would leave nothing.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	cleaned := strings.TrimSpace(text)

	if matches := answerSplitPattern.FindAllStringIndex(cleaned, -1); len(matches) > 0 {
		last := matches[len(matches)-1]
		cleaned = strings.TrimSpace(cleaned[last[1]:])
	}

	var lines []string
	for _, line := range strings.Split(cleaned, "\n") {
		if thoughtPrefixPattern.MatchString(line) {
			continue
		}
		lines = append(lines, answerPrefixPattern.ReplaceAllString(line, ""))
	}

	result := strings.TrimSpace(strings.Join(lines, "\n"))
	if result == "" {
		return cleaned
	}
	return result
}

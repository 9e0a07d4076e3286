package llm

import (
	"fmt"
	"strings"

	"festbot/internal/holiday"
)

// styleGuidance maps a style tag to the tone instruction embedded in prompts.
// Unknown styles fall back to "warm".
var styleGuidance = map[string]string{
	"warm":     "语气温暖、真诚，适合多数正式或半正式群聊。",
	"formal":   "语气端庄，适合政务、企业或教学场景，避免网络用语。",
	"cheerful": "语气活泼，适度俏皮但保持礼貌，突出节日氛围。",
}

func guidanceFor(style string) string {
	if g, ok := styleGuidance[style]; ok {
		return g
	}
	return styleGuidance["warm"]
}

// BuildPrompt renders the user prompt for one holiday occurrence.
func BuildPrompt(p holiday.Payload, style, chatContext string) string {
	aliases := "无"
	if len(p.Aliases) > 0 {
		aliases = strings.Join(p.Aliases, ", ")
	}
	extra := ""
	if chatContext != "" {
		extra = fmt.Sprintf("群聊背景：%s\n", chatContext)
	}
	return strings.TrimSpace(fmt.Sprintf(
		"你是一名擅长撰写中文祝福语的助理。\n"+
			"节日名称：%s\n"+
			"节日日期：%s\n"+
			"节日别名：%s\n"+
			"风格要求：%s\n"+
			"请输出 1 条 40-80 字的群聊祝福，使用纯文本，适度引用节日传统或习俗，"+
			"避免表情符号与过度营销语。可包含 1 句对未来的期许或祝愿。\n%s",
		p.Name, p.Date, aliases, guidanceFor(style), extra,
	))
}

// BuildSystemPrompt renders the system prompt for the configured style.
func BuildSystemPrompt(style string) string {
	return "你正在为机器人生成节日祝福。请保持中文输出，避免使用 HTML、Markdown、表情符号，" +
		"保持一句或两句平衡的祝福结构。 风格提示：" + guidanceFor(style)
}

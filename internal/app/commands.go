package app

import (
	"context"
	"strconv"
	"strings"

	kit "festbot/internal/transport"
	"festbot/pkg/logx"
)

func menuCommands() []kit.BotCommand {
	return []kit.BotCommand{
		{Command: "festival_send", Description: "立即发送今天的节日祝福"},
		{Command: "festival_today", Description: "查看今天的节日"},
	}
}

func (a *App) handleUpdate(ctx context.Context, up kit.Update) {
	if up.Kind != kit.UpdateMessage || up.Message == nil {
		return
	}
	m := up.Message
	cmd := parseCommand(m.Text)
	if cmd == "" {
		return
	}

	chatID := strconv.FormatInt(m.ChatID, 10)
	var reply string
	switch cmd {
	case "festival_send":
		if !a.greeter.ManualAllowed() {
			reply = "手动触发已被禁用。"
			break
		}
		reply = strings.Join(a.greeter.ManualSend(ctx, chatID), "\n")
	case "festival_debug":
		if !a.owners[m.FromID] {
			reply = "仅机器人管理员可使用该命令。"
			break
		}
		reply = strings.Join(a.greeter.DebugSend(ctx, chatID), "\n")
	case "festival_today":
		reply = a.greeter.TodayReport()
	default:
		return
	}
	if reply == "" {
		return
	}

	to := kit.ChatTarget{ChatID: m.ChatID, ThreadID: m.ThreadID}
	if _, err := a.adapter.SendText(ctx, to, reply, nil); err != nil {
		a.log.Warn("command reply failed", logx.String("cmd", cmd), logx.Err(err))
	}
}

// parseCommand extracts the leading bot command from a message, dropping the
// "@botname" suffix used in group chats. Empty means not a command.
func parseCommand(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	first := strings.Fields(text)[0]
	first = strings.TrimPrefix(first, "/")
	if at := strings.IndexByte(first, '@'); at >= 0 {
		first = first[:at]
	}
	return strings.ToLower(first)
}

// Package logx provides the structured logging service used across festbot.
//
// It wraps zerolog behind a small Field-based API so call sites stay free of
// zerolog types, and fans log lines out to up to three sinks: console, file,
// and a rate-limited Telegram chat (useful for operating the bot from the
// same chat platform it serves).
package logx

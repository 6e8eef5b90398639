package actions

import (
	"strings"
	"unicode/utf8"

	"github.com/ionutrobert/WebScape/internal/domain"
	"github.com/ionutrobert/WebScape/internal/engine/handlers"
	"github.com/ionutrobert/WebScape/pkg/api"
)

// HandleChat broadcasts a public chat line.
func HandleChat(ctx handlers.Context, p api.ChatPayload) (handlers.Result, error) {
	msg := strings.TrimSpace(p.Message)
	if msg == "" {
		return handlers.EmptyResult(), nil
	}
	if utf8.RuneCountInString(msg) > domain.MaxChatLength {
		msg = string([]rune(msg)[:domain.MaxChatLength])
	}

	line := api.ChatMessagePayload{
		Username: ctx.Actor.Username,
		Message:  msg,
		Type:     domain.ChatPlayer,
	}
	return handlers.EmptyResult().With(handlers.ToAll(domain.EventChat, line)), nil
}

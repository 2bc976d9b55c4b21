package handler

import (
	"context"
	"fmt"

	"danishdeck/internal/domain"
	"danishdeck/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// maxChatHistory bounds the turns kept in memory and sent upstream
const maxChatHistory = 20

// handleChat handles /chat command
func (h *Handler) handleChat(c tele.Context) error {
	user := h.currentUser(c)
	if user == nil {
		return c.Send(msgLoginRequired)
	}

	phrases, err := h.phrases.List(context.Background(), user.ID)
	if err != nil {
		h.logger.Error("Failed to list phrases", zap.String("user_id", user.ID), zap.Error(err))
		return c.Send(msgError)
	}
	if !h.chat.Unlocked(len(phrases)) {
		return c.Send(fmt.Sprintf("🔒 Chat unlocks at %d phrases. You have %d, keep adding with /add",
			service.ChatUnlockThreshold, len(phrases)))
	}

	greeting := h.chat.Greeting()
	h.SetState(c.Sender().ID, &domain.StateData{
		State:   domain.StateChatting,
		History: []domain.ChatMessage{{Role: domain.RoleAssistant, Content: greeting}},
	})
	h.track(user.ID, domain.EventChatStarted, nil)

	return c.Send("💬 " + greeting + "\n\n(/stop to end the chat)")
}

func (h *Handler) handleChatMessage(c tele.Context, user *domain.User, state *domain.StateData, text string) error {
	ctx := context.Background()

	phrases, err := h.phrases.List(ctx, user.ID)
	if err != nil {
		h.logger.Warn("Failed to list phrases for chat", zap.String("user_id", user.ID), zap.Error(err))
	}

	reply := h.chat.Reply(ctx, phrases, state.History, text)

	history := append(append([]domain.ChatMessage{}, state.History...),
		domain.ChatMessage{Role: domain.RoleUser, Content: text},
		domain.ChatMessage{Role: domain.RoleAssistant, Content: reply},
	)
	if len(history) > maxChatHistory {
		history = history[len(history)-maxChatHistory:]
	}
	state.History = history
	h.SetState(c.Sender().ID, state)
	h.track(user.ID, domain.EventChatMessage, nil)

	return c.Send(reply)
}

package handler

import (
	"context"
	"fmt"

	"danishdeck/internal/domain"
	"danishdeck/internal/middleware"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	msgMainMenu = "🏠 Main menu\n\nChoose an action:"
	msgWelcome  = "Hej! 🇩🇰 I help you collect and practice Danish phrases.\n\n" +
		"/signup to create an account\n/login if you already have one"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("sender_id", userID),
		zap.String("username", c.Sender().Username),
	)

	h.ResetState(userID)

	user := h.currentUser(c)
	if user == nil {
		return c.Send(msgWelcome)
	}
	return c.Send(fmt.Sprintf("Velkommen tilbage, %s!\n\n%s", user.Email, msgMainMenu), mainMenuMarkup())
}

// handleStop ends the current flow. Practice runs with answers are saved as sessions.
func (h *Handler) handleStop(c tele.Context) error {
	userID := c.Sender().ID
	unlock := h.lockUser(userID)
	defer unlock()

	state := h.GetState(userID)
	h.ResetState(userID)

	user := h.currentUser(c)
	if user == nil {
		return c.Send("Stopped.")
	}

	switch state.State {
	case domain.StateFlashcard, domain.StateWaitingAnswer:
		if state.Reviewed() > 0 {
			return h.finishRun(c, user, state)
		}
	case domain.StateChatting:
		return c.Send("Farvel! 👋 Chat ended.\n\n"+msgMainMenu, mainMenuMarkup())
	}
	return c.Send(msgMainMenu, mainMenuMarkup())
}

// handleCancel cancels current operation and resets state
func (h *Handler) handleCancel(c tele.Context) error {
	userID := c.Sender().ID

	h.ResetState(userID)

	if err := c.Edit(msgMainMenu, mainMenuMarkup()); err != nil {
		if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
			return nil // Message was already modified, just acknowledged
		}
		return c.Send(msgMainMenu, mainMenuMarkup())
	}
	return c.Respond()
}

// handleLogout handles /logout command
func (h *Handler) handleLogout(c tele.Context) error {
	userID := c.Sender().ID

	if err := h.auth.Logout(context.Background(), middleware.Scope(c)); err != nil {
		h.logger.Error("Failed to logout", zap.Int64("sender_id", userID), zap.Error(err))
		return c.Send(msgError)
	}

	h.ResetState(userID)
	return c.Send("Logged out. Vi ses! /login to come back.")
}

package handler

import (
	"strings"
	"unicode"

	"danishdeck/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// parseCallback splits callback data into the button's unique name and payload.
// Buttons reaching the generic handler carry raw "\funique|payload" data.
func parseCallback(cb *tele.Callback) (unique, payload string) {
	if cb.Unique != "" {
		return cb.Unique, cleanCallbackData(cb.Data)
	}
	data := cleanCallbackData(cb.Data)
	unique, payload, _ = strings.Cut(data, "|")
	return unique, payload
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	// Already edited by another callback; just acknowledge
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("sender_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("sender_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	unique, payload := parseCallback(callback)
	h.logger.Debug("Processing callback",
		zap.String("unique", unique),
		zap.String("payload", payload),
		zap.String("id", callback.ID),
		zap.Int64("sender_id", c.Sender().ID),
	)

	unlock := h.lockUser(c.Sender().ID)
	defer unlock()

	// Buttons that work without a session
	switch unique {
	case "cancel", "main_menu":
		return h.handleCancel(c)
	}

	user := h.currentUser(c)
	if user == nil {
		return c.Respond(&tele.CallbackResponse{Text: msgLoginRequired, ShowAlert: true})
	}

	switch unique {
	case "menu":
		if err := c.Respond(); err != nil {
			h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
		}
		return h.handleMenu(c, payload)
	case "suggest":
		return h.handleSuggestion(c)
	case "cat":
		state := h.GetState(c.Sender().ID)
		if state.State != domain.StateWaitingCategory {
			return c.Respond(&tele.CallbackResponse{Text: "Nothing to save"})
		}
		if err := c.Respond(); err != nil {
			h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
		}
		return h.savePhrase(c, user, state, payload)
	case "mode":
		return h.startRun(c, user, payload)
	case "reveal":
		return h.handleReveal(c, payload)
	case "answer":
		return h.handleFlashcardAnswer(c, user, payload)
	case "del":
		return h.handleDeletePrompt(c, user, payload)
	case "delete":
		return h.handleDeletePhrase(c, user, payload)
	}

	// If it's not handled, acknowledge it anyway
	h.logger.Warn("Unhandled callback",
		zap.String("unique", unique),
		zap.String("payload", payload),
	)
	return c.Respond()
}

// handleMenu runs the command behind a main menu button
func (h *Handler) handleMenu(c tele.Context, item string) error {
	switch item {
	case "add":
		return h.handleAdd(c)
	case "library":
		return h.sendLibrary(c, nil)
	case "practice":
		return h.handlePractice(c)
	case "stats":
		return h.handleStats(c)
	case "chat":
		return h.handleChat(c)
	}
	return nil
}

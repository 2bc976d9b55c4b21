package handler

import (
	"strings"

	"danishdeck/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore unknown commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return c.Send("Unknown command. /start shows the menu.")
	}
	if text == "" {
		return nil
	}

	unlock := h.lockUser(userID)
	defer unlock()

	state := h.GetState(userID)

	// Auth steps run before a user exists
	switch state.State {
	case domain.StateWaitingEmail:
		return h.handleEmail(c, state, text)
	case domain.StateWaitingPassword:
		return h.handlePassword(c, state, c.Text())
	}

	user := h.currentUser(c)
	if user == nil {
		return c.Send(msgWelcome)
	}

	switch state.State {
	case domain.StateWaitingMeaning:
		return h.handleMeaning(c, state, text)

	case domain.StateWaitingCategory:
		return h.savePhrase(c, user, state, text)

	case domain.StateWaitingAnswer:
		return h.handleQuizAnswer(c, user, state, text)

	case domain.StateChatting:
		return h.handleChatMessage(c, user, state, text)

	case domain.StateFlashcard, domain.StateWaitingQuizMode:
		return c.Send("Use the buttons above, or /stop to finish.")

	default:
		// Idle or waiting for a phrase: the text is a new Danish phrase
		return h.handleDanish(c, state, text)
	}
}

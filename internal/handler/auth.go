package handler

import (
	"context"
	"errors"
	"fmt"

	"danishdeck/internal/domain"
	"danishdeck/internal/middleware"
	"danishdeck/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleSignup handles /signup command
func (h *Handler) handleSignup(c tele.Context) error {
	h.SetState(c.Sender().ID, &domain.StateData{
		State:    domain.StateWaitingEmail,
		AuthMode: domain.AuthSignup,
	})
	return c.Send("📧 Send the email for your new account:", cancelMarkup())
}

// handleLogin handles /login command
func (h *Handler) handleLogin(c tele.Context) error {
	h.SetState(c.Sender().ID, &domain.StateData{
		State:    domain.StateWaitingEmail,
		AuthMode: domain.AuthLogin,
	})
	return c.Send("📧 Send your email:", cancelMarkup())
}

func (h *Handler) handleEmail(c tele.Context, state *domain.StateData, text string) error {
	email, err := service.NormalizeEmail(text)
	if err != nil {
		return c.Send("That doesn't look like an email address. Try again:", cancelMarkup())
	}

	state.State = domain.StateWaitingPassword
	state.Email = email
	h.SetState(c.Sender().ID, state)
	return c.Send("🔑 Now send the password:", cancelMarkup())
}

func (h *Handler) handlePassword(c tele.Context, state *domain.StateData, text string) error {
	userID := c.Sender().ID
	ctx := context.Background()
	scope := middleware.Scope(c)

	// Deleting the password message is best effort; the bot may lack the right
	if msg := c.Message(); msg != nil && h.bot != nil {
		if err := h.bot.Delete(msg); err != nil {
			h.logger.Debug("Could not delete password message", zap.Error(err))
		}
	}

	var (
		user *domain.User
		err  error
	)
	if state.AuthMode == domain.AuthSignup {
		user, err = h.auth.Signup(ctx, scope, state.Email, text)
	} else {
		user, err = h.auth.Login(ctx, scope, state.Email, text)
	}

	switch {
	case errors.Is(err, service.ErrDuplicateAccount):
		h.ResetState(userID)
		return c.Send("An account with this email already exists. Use /login instead.")
	case errors.Is(err, service.ErrInvalidCredentials):
		h.ResetState(userID)
		return c.Send("❌ Wrong email or password. /login to try again.")
	case errors.Is(err, service.ErrEmptyField):
		return c.Send("The password can't be empty. Send the password:", cancelMarkup())
	case err != nil:
		h.logger.Error("Authentication failed", zap.Int64("sender_id", userID), zap.Error(err))
		h.ResetState(userID)
		return c.Send(msgError)
	}

	h.logger.Info("User authenticated",
		zap.Int64("sender_id", userID),
		zap.String("user_id", user.ID),
		zap.String("mode", string(state.AuthMode)),
	)
	h.ResetState(userID)
	return c.Send(fmt.Sprintf("✅ Welcome, %s!\n\n%s", user.Email, msgMainMenu), mainMenuMarkup())
}

package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"danishdeck/internal/domain"
	"danishdeck/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	libraryPageSize = 20

	msgPhraseGone = "This phrase is already gone"
)

// handleAdd handles /add command
func (h *Handler) handleAdd(c tele.Context) error {
	h.SetState(c.Sender().ID, &domain.StateData{State: domain.StateWaitingDanish})
	return c.Send("🇩🇰 Send the Danish phrase:", cancelMarkup())
}

func (h *Handler) handleDanish(c tele.Context, state *domain.StateData, text string) error {
	state.State = domain.StateWaitingMeaning
	state.DanishText = text
	state.MeaningText = ""

	markup := &tele.ReplyMarkup{}
	msg := "Now send the meaning:"
	if suggestion, ok := h.translation.Translate(text); ok {
		state.MeaningText = suggestion
		msg = fmt.Sprintf("💡 Suggested meaning: %s\n\nSend the meaning or accept the suggestion:", suggestion)
		markup.Inline(
			markup.Row(markup.Data("✅ "+suggestion, "suggest")),
			markup.Row(btnCancel),
		)
	} else {
		markup.Inline(markup.Row(btnCancel))
	}

	h.SetState(c.Sender().ID, state)
	return c.Send(msg, markup)
}

func (h *Handler) handleMeaning(c tele.Context, state *domain.StateData, text string) error {
	state.State = domain.StateWaitingCategory
	state.MeaningText = text
	h.SetState(c.Sender().ID, state)
	return c.Send("🏷 Pick a category (or type your own):", categoryMarkup())
}

// handleSuggestion accepts the suggested meaning of the phrase being added
func (h *Handler) handleSuggestion(c tele.Context) error {
	state := h.GetState(c.Sender().ID)
	if state.State != domain.StateWaitingMeaning || state.MeaningText == "" {
		return c.Respond()
	}
	if err := h.handleMeaning(c, state, state.MeaningText); err != nil {
		return err
	}
	return c.Respond()
}

func categoryMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}
	row := tele.Row{}
	for _, category := range domain.Categories {
		row = append(row, markup.Data(category, "cat", category))
		if len(row) == 3 {
			rows = append(rows, row)
			row = tele.Row{}
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, markup.Row(btnCancel))
	markup.Inline(rows...)
	return markup
}

// savePhrase stores the composed phrase and waits for the next one
func (h *Handler) savePhrase(c tele.Context, user *domain.User, state *domain.StateData, category string) error {
	ctx := context.Background()
	userID := c.Sender().ID

	phrase, err := h.phrases.Add(ctx, user.ID, domain.PhraseInput{
		DanishText:  state.DanishText,
		MeaningText: state.MeaningText,
		Category:    category,
	})
	if errors.Is(err, service.ErrEmptyField) {
		h.SetState(userID, &domain.StateData{State: domain.StateWaitingDanish})
		return c.Send("Both the phrase and the meaning are required. Send the Danish phrase:", cancelMarkup())
	}
	if err != nil {
		h.logger.Error("Failed to save phrase",
			zap.Error(err),
			zap.String("user_id", user.ID),
		)
		return c.Send("Couldn't save the phrase. Please try again.")
	}

	h.logger.Info("Phrase saved",
		zap.String("user_id", user.ID),
		zap.String("phrase_id", phrase.ID),
		zap.String("category", phrase.Category),
	)

	// Reset to waiting for next phrase
	h.SetState(userID, &domain.StateData{State: domain.StateWaitingDanish})

	msg := fmt.Sprintf("✅ Saved: %s = %s [%s]\n\nSend the next Danish phrase or /stop", phrase.DanishText, phrase.MeaningText, phrase.Category)
	if phrases, err := h.phrases.List(ctx, user.ID); err == nil && len(phrases) == service.ChatUnlockThreshold {
		msg += "\n\n🎉 You have 10 phrases! Practice chat is unlocked: /chat"
	}
	return c.Send(msg)
}

// handleLibrary lists the user's phrases. Arguments filter by status, category or search text.
func (h *Handler) handleLibrary(c tele.Context) error {
	return h.sendLibrary(c, c.Args())
}

func (h *Handler) sendLibrary(c tele.Context, args []string) error {
	user := h.currentUser(c)
	if user == nil {
		return c.Send(msgLoginRequired)
	}

	filter := libraryFilter(args)
	phrases, err := h.phrases.Filter(context.Background(), user.ID, filter)
	if err != nil {
		h.logger.Error("Failed to list phrases", zap.String("user_id", user.ID), zap.Error(err))
		return c.Send(msgError)
	}

	if len(phrases) == 0 {
		if filter == (domain.PhraseFilter{}) {
			return c.Send("Your library is empty. Add a phrase with /add")
		}
		return c.Send("No phrases match.")
	}

	shown := phrases
	if len(shown) > libraryPageSize {
		shown = shown[:libraryPageSize]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📚 Your phrases (%d):\n\n", len(phrases))
	for _, p := range shown {
		mark := "📖"
		if p.Status == domain.StatusKnown {
			mark = "⭐"
		}
		fmt.Fprintf(&b, "%s %s - %s [%s]\n", mark, p.DanishText, p.MeaningText, p.Category)
	}
	if len(phrases) > len(shown) {
		fmt.Fprintf(&b, "\n…and %d more. Narrow it down: /library <word>", len(phrases)-len(shown))
	}
	return c.Send(b.String(), libraryMarkup(shown))
}

// libraryMarkup offers a delete button for every listed phrase
func libraryMarkup(phrases []domain.Phrase) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(phrases))
	for _, p := range phrases {
		rows = append(rows, markup.Row(markup.Data("🗑 "+p.DanishText, "del", p.ID)))
	}
	markup.Inline(rows...)
	return markup
}

// findPhrase returns the user's phrase with id, or nil
func (h *Handler) findPhrase(userID, phraseID string) (*domain.Phrase, error) {
	phrases, err := h.phrases.List(context.Background(), userID)
	if err != nil {
		return nil, err
	}
	for i := range phrases {
		if phrases[i].ID == phraseID {
			return &phrases[i], nil
		}
	}
	return nil, nil
}

// handleDeletePrompt asks to confirm removing a phrase picked in the library
func (h *Handler) handleDeletePrompt(c tele.Context, user *domain.User, phraseID string) error {
	p, err := h.findPhrase(user.ID, phraseID)
	if err != nil {
		h.logger.Error("Failed to load phrase", zap.String("user_id", user.ID), zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: msgError})
	}
	if p == nil {
		return c.Respond(&tele.CallbackResponse{Text: msgPhraseGone})
	}

	text := fmt.Sprintf("Delete \"%s - %s\"?", p.DanishText, p.MeaningText)
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(markup.Data("🗑 Delete", "delete", p.ID), btnCancel))

	if err := c.Edit(text, markup); err != nil {
		if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
			return nil
		}
		return c.Send(text, markup)
	}
	return c.Respond()
}

// handleDeletePhrase removes a confirmed phrase
func (h *Handler) handleDeletePhrase(c tele.Context, user *domain.User, phraseID string) error {
	p, err := h.findPhrase(user.ID, phraseID)
	if err != nil {
		h.logger.Error("Failed to load phrase", zap.String("user_id", user.ID), zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: msgError})
	}
	if p == nil {
		return c.Respond(&tele.CallbackResponse{Text: msgPhraseGone})
	}

	if err := h.phrases.Delete(context.Background(), user.ID, p.ID); err != nil {
		h.logger.Error("Failed to delete phrase",
			zap.String("user_id", user.ID),
			zap.String("phrase_id", p.ID),
			zap.Error(err),
		)
		return c.Respond(&tele.CallbackResponse{Text: msgError})
	}

	text := fmt.Sprintf("🗑 Deleted: %s\n\n%s", p.DanishText, msgMainMenu)
	if err := c.Edit(text, mainMenuMarkup()); err != nil {
		if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
			return nil
		}
		return c.Send(text, mainMenuMarkup())
	}
	return c.Respond()
}

// libraryFilter interprets /library arguments: a status, a category, or search text
func libraryFilter(args []string) domain.PhraseFilter {
	term := strings.TrimSpace(strings.Join(args, " "))
	if term == "" {
		return domain.PhraseFilter{}
	}
	for _, status := range []domain.Status{domain.StatusLearning, domain.StatusKnown} {
		if strings.EqualFold(term, string(status)) {
			return domain.PhraseFilter{Status: string(status)}
		}
	}
	for _, category := range domain.Categories {
		if strings.EqualFold(term, category) {
			return domain.PhraseFilter{Category: category}
		}
	}
	return domain.PhraseFilter{Search: term}
}

// handleTranslate handles /translate <text>
func (h *Handler) handleTranslate(c tele.Context) error {
	text := strings.TrimSpace(strings.Join(c.Args(), " "))
	if text == "" {
		return c.Send("Usage: /translate <Danish phrase>")
	}

	meaning, ok := h.translation.Translate(text)
	if !ok {
		return c.Send(fmt.Sprintf("🤷 %s\n\nI don't know this one yet. Add it with /add once you know the meaning.", meaning))
	}
	return c.Send(fmt.Sprintf("🔤 %s = %s", text, meaning))
}

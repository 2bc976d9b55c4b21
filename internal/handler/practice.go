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
	modeFlashcard = "flashcard"
	modeQuizDM    = string(domain.DanishToMeaning)
	modeQuizMD    = string(domain.MeaningToDanish)

	gradeKnew     = "knew"
	gradeLearning = "learning"

	msgCardInactive = "This card is no longer active"
)

// handlePractice handles /practice command
func (h *Handler) handlePractice(c tele.Context) error {
	user := h.currentUser(c)
	if user == nil {
		return c.Send(msgLoginRequired)
	}

	deck, err := h.phrases.Deck(context.Background(), user.ID)
	if errors.Is(err, service.ErrEmptyDeck) {
		return c.Send("No phrases to practice yet. Add some with /add")
	}
	if err != nil {
		h.logger.Error("Failed to load deck", zap.String("user_id", user.ID), zap.Error(err))
		return c.Send(msgError)
	}

	h.SetState(c.Sender().ID, &domain.StateData{State: domain.StateWaitingQuizMode})

	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data("🃏 Flashcards", "mode", modeFlashcard)),
		markup.Row(markup.Data("✍️ Quiz: Danish → meaning", "mode", modeQuizDM)),
		markup.Row(markup.Data("✍️ Quiz: meaning → Danish", "mode", modeQuizMD)),
		markup.Row(btnCancel),
	)
	return c.Send(fmt.Sprintf("🎯 %d phrases in your deck. How do you want to practice?", len(deck)), markup)
}

// startRun begins a flashcard or quiz run over the whole deck
func (h *Handler) startRun(c tele.Context, user *domain.User, mode string) error {
	deck, err := h.phrases.Deck(context.Background(), user.ID)
	if errors.Is(err, service.ErrEmptyDeck) {
		return c.Respond(&tele.CallbackResponse{Text: "No phrases to practice yet", ShowAlert: true})
	}
	if err != nil {
		h.logger.Error("Failed to load deck", zap.String("user_id", user.ID), zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: msgError})
	}

	state := &domain.StateData{Deck: deck}
	switch mode {
	case modeFlashcard:
		state.State = domain.StateFlashcard
	case modeQuizDM, modeQuizMD:
		state.State = domain.StateWaitingAnswer
		state.Direction = domain.QuizDirection(mode)
	default:
		return c.Respond(&tele.CallbackResponse{Text: "Unknown mode"})
	}

	h.SetState(c.Sender().ID, state)
	if err := c.Respond(); err != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
	}
	return h.sendItem(c, state)
}

// sendItem shows the phrase under review
func (h *Handler) sendItem(c tele.Context, state *domain.StateData) error {
	p := state.Current()
	if p == nil {
		return nil
	}
	progress := fmt.Sprintf("%d/%d", state.Index+1, len(state.Deck))

	if state.State == domain.StateFlashcard {
		markup := &tele.ReplyMarkup{}
		markup.Inline(markup.Row(markup.Data("👀 Show meaning", "reveal", p.ID)))
		return c.Send(fmt.Sprintf("🃏 %s\n\n%s", progress, p.DanishText), markup)
	}

	prompt, _ := service.QuizPrompt(state.Direction, *p)
	return c.Send(fmt.Sprintf("✍️ %s\n\nTranslate: %s\n\n(/stop to finish)", progress, prompt))
}

// handleReveal flips the current flashcard
func (h *Handler) handleReveal(c tele.Context, phraseID string) error {
	userID := c.Sender().ID
	state := h.GetState(userID)
	p := state.Current()
	if state.State != domain.StateFlashcard || p == nil || p.ID != phraseID {
		return c.Respond(&tele.CallbackResponse{Text: msgCardInactive})
	}

	state.Revealed = true
	h.SetState(userID, state)

	text := fmt.Sprintf("🃏 %d/%d\n\n%s\n= %s", state.Index+1, len(state.Deck), p.DanishText, p.MeaningText)
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(
		markup.Data("✅ Knew it", "answer", gradeKnew, p.ID),
		markup.Data("📚 Still learning", "answer", gradeLearning, p.ID),
	))

	if err := c.Edit(text, markup); err != nil {
		if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
			return nil // Message was already modified, just acknowledged
		}
		return c.Send(text, markup)
	}
	return c.Respond()
}

// handleFlashcardAnswer records a self-graded flashcard.
// The payload is "grade|phraseID"; buttons of earlier cards are rejected.
func (h *Handler) handleFlashcardAnswer(c tele.Context, user *domain.User, payload string) error {
	grade, phraseID, _ := strings.Cut(payload, "|")

	state := h.GetState(c.Sender().ID)
	p := state.Current()
	if state.State != domain.StateFlashcard || p == nil || p.ID != phraseID {
		return c.Respond(&tele.CallbackResponse{Text: msgCardInactive})
	}
	if !state.Revealed {
		return c.Respond(&tele.CallbackResponse{Text: "Show the meaning first"})
	}
	if err := c.Respond(); err != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
	}
	return h.advance(c, user, state, grade == gradeKnew, "")
}

// handleQuizAnswer checks a typed quiz answer
func (h *Handler) handleQuizAnswer(c tele.Context, user *domain.User, state *domain.StateData, answer string) error {
	p := state.Current()
	if p == nil {
		h.ResetState(c.Sender().ID)
		return c.Send(msgMainMenu, mainMenuMarkup())
	}

	correct := service.CheckAnswer(state.Direction, *p, answer)
	feedback := "✅ Correct!"
	if !correct {
		_, expected := service.QuizPrompt(state.Direction, *p)
		feedback = "❌ Not quite. Expected: " + expected
	}
	return h.advance(c, user, state, correct, feedback)
}

// advance records the outcome for the current phrase and moves to the next one
func (h *Handler) advance(c tele.Context, user *domain.User, state *domain.StateData, correct bool, feedback string) error {
	p := state.Current()
	if _, err := h.phrases.RecordPractice(context.Background(), user.ID, p.ID, correct); err != nil {
		h.logger.Error("Failed to record practice",
			zap.String("user_id", user.ID),
			zap.String("phrase_id", p.ID),
			zap.Error(err),
		)
	}

	if correct {
		state.Correct++
	} else {
		state.Incorrect++
	}
	state.Index++
	state.Revealed = false

	if feedback != "" {
		if err := c.Send(feedback); err != nil {
			return err
		}
	}

	if state.Current() == nil {
		h.ResetState(c.Sender().ID)
		return h.finishRun(c, user, state)
	}

	h.SetState(c.Sender().ID, state)
	return h.sendItem(c, state)
}

// finishRun saves the run as a practice session and shows the summary
func (h *Handler) finishRun(c tele.Context, user *domain.User, state *domain.StateData) error {
	mode := domain.ModeQuiz
	if state.State == domain.StateFlashcard {
		mode = domain.ModeFlashcard
	}

	session, err := h.practice.AddSession(context.Background(), user.ID, mode, state.Reviewed(), state.Correct, state.Incorrect)
	if err != nil {
		h.logger.Error("Failed to save session", zap.String("user_id", user.ID), zap.Error(err))
		return c.Send(msgError)
	}

	text := fmt.Sprintf(
		"🏁 Done! Reviewed %d, correct %d, incorrect %d (%d%%).\n\n%s",
		session.ItemsReviewedCount,
		session.CorrectCount,
		session.IncorrectCount,
		session.Accuracy(),
		msgMainMenu,
	)
	return c.Send(text, mainMenuMarkup())
}

package service

import (
	"strings"

	"danishdeck/internal/domain"

	"golang.org/x/text/cases"
)

// QuizPrompt returns the side of the phrase shown to the learner and the expected answer
func QuizPrompt(direction domain.QuizDirection, p domain.Phrase) (prompt, expected string) {
	if direction == domain.MeaningToDanish {
		return p.MeaningText, p.DanishText
	}
	return p.DanishText, p.MeaningText
}

// CheckAnswer compares a typed answer with the expected side of the phrase,
// ignoring surrounding whitespace and letter case (including æ, ø and å).
func CheckAnswer(direction domain.QuizDirection, p domain.Phrase, answer string) bool {
	_, expected := QuizPrompt(direction, p)
	return fold(answer) == fold(expected)
}

func fold(s string) string {
	// Casers are stateful, so each call gets its own
	return cases.Fold().String(strings.TrimSpace(s))
}

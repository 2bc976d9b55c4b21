package service

import (
	"fmt"
	"strings"
)

// TranslationService suggests meanings for common Danish phrases
type TranslationService struct {
	table map[string]string
}

// NewTranslationService creates a translation service with the built-in phrase table
func NewTranslationService() *TranslationService {
	return &TranslationService{
		table: map[string]string{
			"hej":                   "hello",
			"farvel":                "goodbye",
			"tak":                   "thank you",
			"ja":                    "yes",
			"nej":                   "no",
			"god morgen":            "good morning",
			"god aften":             "good evening",
			"hvordan har du det":    "how are you",
			"jeg hedder":            "my name is",
			"undskyld":              "excuse me",
			"hvor er":               "where is",
			"toilettet":             "the toilet",
			"toget":                 "the train",
			"bussen":                "the bus",
			"jeg forstår ikke":      "i don't understand",
			"taler du engelsk":      "do you speak english",
			"hvor meget koster det": "how much does it cost",
			"jeg vil gerne have":    "i would like",
			"en kaffe":              "a coffee",
			"en øl":                 "a beer",
			"vand":                  "water",
			"regningen":             "the bill",
		},
	}
}

// Translate looks up the meaning of text. When the phrase is unknown it
// returns a placeholder asking for a manual translation and ok=false.
func (s *TranslationService) Translate(text string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(text))
	if meaning, ok := s.table[key]; ok {
		return meaning, true
	}
	return fmt.Sprintf("[Translation for: %s]", text), false
}

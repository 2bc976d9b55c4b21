package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslationService_Translate(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		expected   string
		expectedOK bool
	}{
		{name: "known phrase", input: "hej", expected: "hello", expectedOK: true},
		{name: "case and whitespace ignored", input: "  God Morgen ", expected: "good morning", expectedOK: true},
		{name: "danish letters", input: "en øl", expected: "a beer", expectedOK: true},
		{name: "unknown phrase", input: "rødgrød med fløde", expected: "[Translation for: rødgrød med fløde]", expectedOK: false},
	}

	service := NewTranslationService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := service.Translate(tt.input)

			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.expectedOK, ok)
		})
	}
}

package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"danishdeck/internal/domain"

	"go.uber.org/zap"
)

// ChatUnlockThreshold is the number of saved phrases needed to open the chat
const ChatUnlockThreshold = 10

const chatGreeting = "Hej! Jeg er klar til at øve dansk med dig. Hvad vil du tale om?"

var chatFallbacks = []string{
	"Det lyder interessant! Fortæl mig mere.",
	"Hvad synes du om det?",
	"Hvordan har du det i dag?",
	"Hvad laver du?",
	"Det er godt! Fortsæt.",
}

// ChatClient sends a conversation to a text-generation backend
type ChatClient interface {
	Complete(ctx context.Context, system string, messages []domain.ChatMessage) (string, error)
}

// ChatService runs practice conversations in Danish
type ChatService struct {
	client ChatClient
	logger *zap.Logger

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewChatService creates a chat service. A nil client answers from the fallback lines only.
func NewChatService(client ChatClient, logger *zap.Logger) *ChatService {
	return &ChatService{
		client: client,
		logger: logger,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Greeting returns the assistant's opening line
func (s *ChatService) Greeting() string {
	return chatGreeting
}

// Unlocked reports whether a learner with phraseCount phrases may chat
func (s *ChatService) Unlocked(phraseCount int) bool {
	return phraseCount >= ChatUnlockThreshold
}

// SystemPrompt builds the tutor instruction from the learner's phrases
func SystemPrompt(phrases []domain.Phrase) string {
	pairs := make([]string, 0, len(phrases))
	for _, p := range phrases {
		pairs = append(pairs, fmt.Sprintf("%s (%s)", p.DanishText, p.MeaningText))
	}
	return "Du er en dansk sprogpartner. Svar kun på dansk. " +
		"Brug disse ord og sætninger i samtalen, når det er muligt: " + strings.Join(pairs, ", ") + ". " +
		"Hold svarene korte (1-3 sætninger), stil ofte spørgsmål, og vær venlig og opmuntrende."
}

// Reply answers the learner's message. It never fails: any backend error
// is logged and replaced with a canned Danish line.
func (s *ChatService) Reply(ctx context.Context, phrases []domain.Phrase, history []domain.ChatMessage, message string) string {
	if s.client == nil {
		return s.fallback()
	}

	messages := make([]domain.ChatMessage, 0, len(history)+1)
	for _, m := range history {
		// The conversation sent upstream must open with a user turn
		if len(messages) == 0 && m.Role == domain.RoleAssistant {
			continue
		}
		role := domain.RoleUser
		if m.Role == domain.RoleAssistant {
			role = domain.RoleAssistant
		}
		messages = append(messages, domain.ChatMessage{Role: role, Content: m.Content})
	}
	messages = append(messages, domain.ChatMessage{Role: domain.RoleUser, Content: message})

	reply, err := s.client.Complete(ctx, SystemPrompt(phrases), messages)
	if err != nil {
		s.logger.Warn("Chat completion failed, using fallback", zap.Error(err))
		return s.fallback()
	}
	return reply
}

func (s *ChatService) fallback() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return chatFallbacks[s.rnd.Intn(len(chatFallbacks))]
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"danishdeck/internal/domain"
	"danishdeck/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ImportResult reports the outcome of a bulk phrase import
type ImportResult struct {
	Added   int      `json:"added"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

// PhraseService handles the phrase library and practice outcomes
type PhraseService struct {
	phraseRepo repository.PhraseRepository
	events     *EventService
	logger     *zap.Logger
	now        func() time.Time
}

// NewPhraseService creates a new phrase service
func NewPhraseService(phraseRepo repository.PhraseRepository, events *EventService, logger *zap.Logger) *PhraseService {
	return &PhraseService{
		phraseRepo: phraseRepo,
		events:     events,
		logger:     logger,
		now:        time.Now,
	}
}

// List returns the user's phrases in insertion order; empty without a user
func (s *PhraseService) List(ctx context.Context, userID string) ([]domain.Phrase, error) {
	if userID == "" {
		return []domain.Phrase{}, nil
	}
	return s.phraseRepo.ListPhrases(ctx, userID)
}

// Filter returns the phrases matching the library filter
func (s *PhraseService) Filter(ctx context.Context, userID string, filter domain.PhraseFilter) ([]domain.Phrase, error) {
	phrases, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	matched := make([]domain.Phrase, 0, len(phrases))
	for _, p := range phrases {
		if filter.Matches(p) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (s *PhraseService) newPhrase(userID string, in domain.PhraseInput) (domain.Phrase, error) {
	in = in.Normalized()
	if in.DanishText == "" || in.MeaningText == "" {
		return domain.Phrase{}, fmt.Errorf("danish text and meaning: %w", ErrEmptyField)
	}

	return domain.Phrase{
		ID:             uuid.NewString(),
		UserID:         userID,
		TargetLanguage: domain.TargetLanguage,
		DanishText:     in.DanishText,
		MeaningText:    in.MeaningText,
		Category:       in.Category,
		Status:         domain.StatusLearning,
		CreatedAt:      s.now().UTC(),
	}, nil
}

// Add saves a new phrase in the Learning state
func (s *PhraseService) Add(ctx context.Context, userID string, in domain.PhraseInput) (*domain.Phrase, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	phrase, err := s.newPhrase(userID, in)
	if err != nil {
		return nil, err
	}

	if err := s.phraseRepo.AddPhrases(ctx, userID, phrase); err != nil {
		return nil, fmt.Errorf("failed to save phrase: %w", err)
	}

	s.events.trackQuietly(ctx, userID, domain.EventPhraseAdded, nil)
	return &phrase, nil
}

// Import adds many phrases in a single write; invalid rows are skipped
func (s *PhraseService) Import(ctx context.Context, userID string, inputs []domain.PhraseInput) (*ImportResult, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	result := &ImportResult{Errors: []string{}}
	phrases := make([]domain.Phrase, 0, len(inputs))
	for i, in := range inputs {
		phrase, err := s.newPhrase(userID, in)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		phrases = append(phrases, phrase)
	}

	if len(phrases) == 0 {
		return result, nil
	}

	if err := s.phraseRepo.AddPhrases(ctx, userID, phrases...); err != nil {
		return nil, fmt.Errorf("failed to save phrases: %w", err)
	}
	result.Added = len(phrases)

	s.events.trackQuietly(ctx, userID, domain.EventPhrasesImported, map[string]interface{}{"count": result.Added})
	s.logger.Info("Phrases imported",
		zap.String("user_id", userID),
		zap.Int("added", result.Added),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

// Update merges the set fields into the phrase; unknown ids are ignored
func (s *PhraseService) Update(ctx context.Context, userID, phraseID string, upd domain.PhraseUpdate) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	upd, err := normalizeUpdate(upd)
	if err != nil {
		return err
	}

	_, err = s.phraseRepo.UpdatePhrase(ctx, userID, phraseID, func(p *domain.Phrase) error {
		upd.Apply(p)
		return nil
	})
	return err
}

func normalizeUpdate(upd domain.PhraseUpdate) (domain.PhraseUpdate, error) {
	trimmed := func(v *string) *string {
		if v == nil {
			return nil
		}
		t := strings.TrimSpace(*v)
		return &t
	}

	out := domain.PhraseUpdate{
		DanishText:  trimmed(upd.DanishText),
		MeaningText: trimmed(upd.MeaningText),
		Category:    trimmed(upd.Category),
		Status:      upd.Status,
	}
	if (out.DanishText != nil && *out.DanishText == "") || (out.MeaningText != nil && *out.MeaningText == "") {
		return out, ErrEmptyField
	}
	if out.Category != nil && *out.Category == "" {
		category := domain.DefaultCategory
		out.Category = &category
	}
	if out.Status != nil && !out.Status.Valid() {
		return out, ErrInvalidStatus
	}
	return out, nil
}

// Delete removes the phrase; unknown ids are ignored
func (s *PhraseService) Delete(ctx context.Context, userID, phraseID string) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	_, err := s.phraseRepo.DeletePhrase(ctx, userID, phraseID)
	return err
}

// RecordPractice applies one answer to the phrase counters.
// It returns the updated phrase, or nil when the id is unknown.
func (s *PhraseService) RecordPractice(ctx context.Context, userID, phraseID string, correct bool) (*domain.Phrase, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	var updated domain.Phrase
	found, err := s.phraseRepo.UpdatePhrase(ctx, userID, phraseID, func(p *domain.Phrase) error {
		p.RecordOutcome(correct, s.now().UTC())
		updated = *p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record practice: %w", err)
	}
	if !found {
		return nil, nil
	}

	if updated.Status == domain.StatusKnown && updated.CorrectCount == domain.KnownThreshold {
		s.logger.Info("Phrase became known",
			zap.String("user_id", userID),
			zap.String("phrase_id", phraseID),
		)
	}
	return &updated, nil
}

// Deck returns the phrases for a practice run in library order
func (s *PhraseService) Deck(ctx context.Context, userID string) ([]domain.Phrase, error) {
	phrases, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(phrases) == 0 {
		return nil, ErrEmptyDeck
	}
	return phrases, nil
}

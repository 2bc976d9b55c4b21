package kv

import (
	"context"

	"danishdeck/internal/domain"
	"danishdeck/internal/storage"
)

// PhraseRepo implements repository.PhraseRepository on "phrases_<userId>" blobs
type PhraseRepo struct {
	store storage.KV
}

// NewPhraseRepo creates a new phrase repository
func NewPhraseRepo(store storage.KV) *PhraseRepo {
	return &PhraseRepo{store: store}
}

// ListPhrases returns the user's phrases in insertion order
func (r *PhraseRepo) ListPhrases(ctx context.Context, userID string) ([]domain.Phrase, error) {
	phrases := []domain.Phrase{}
	if _, err := load(ctx, r.store, phrasesKey(userID), &phrases); err != nil {
		return nil, err
	}
	return phrases, nil
}

// AddPhrases appends phrases to the user's sequence in one write
func (r *PhraseRepo) AddPhrases(ctx context.Context, userID string, phrases ...domain.Phrase) error {
	if len(phrases) == 0 {
		return nil
	}
	return update(ctx, r.store, phrasesKey(userID), func(list *[]domain.Phrase) (bool, error) {
		*list = append(*list, phrases...)
		return true, nil
	})
}

// UpdatePhrase applies fn to the phrase with phraseID.
// It reports false without writing when the phrase does not exist.
func (r *PhraseRepo) UpdatePhrase(ctx context.Context, userID, phraseID string, fn func(p *domain.Phrase) error) (bool, error) {
	found := false
	err := update(ctx, r.store, phrasesKey(userID), func(list *[]domain.Phrase) (bool, error) {
		found = false
		for i := range *list {
			if (*list)[i].ID != phraseID {
				continue
			}
			found = true
			if err := fn(&(*list)[i]); err != nil {
				return false, err
			}
			return true, nil
		}
		return false, nil
	})
	return found, err
}

// DeletePhrase removes the phrase with phraseID and reports whether it existed
func (r *PhraseRepo) DeletePhrase(ctx context.Context, userID, phraseID string) (bool, error) {
	found := false
	err := update(ctx, r.store, phrasesKey(userID), func(list *[]domain.Phrase) (bool, error) {
		kept := (*list)[:0]
		found = false
		for _, p := range *list {
			if p.ID == phraseID {
				found = true
				continue
			}
			kept = append(kept, p)
		}
		*list = kept
		return found, nil
	})
	return found, err
}

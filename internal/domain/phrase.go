package domain

import (
	"strings"
	"time"
)

// TargetLanguage is the locale every phrase is learned in
const TargetLanguage = "da-DK"

// KnownThreshold is the number of correct answers that marks a phrase as known
const KnownThreshold = 3

// DefaultCategory is assigned when a phrase is saved without one
const DefaultCategory = "Other"

// Categories lists the categories offered to clients
var Categories = []string{"Travel", "Work", "Food", "Social", "Daily Life", "Other"}

// Status is the coarse learning progress of a phrase
type Status string

const (
	StatusLearning Status = "Learning"
	StatusKnown    Status = "Known"
)

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	return s == StatusLearning || s == StatusKnown
}

// Phrase is a saved Danish phrase with its meaning and practice counters
type Phrase struct {
	ID                    string     `json:"id"`
	UserID                string     `json:"user_id"`
	TargetLanguage        string     `json:"target_language"`
	DanishText            string     `json:"danish_text"`
	MeaningText           string     `json:"meaning_text"`
	Category              string     `json:"category"`
	Status                Status     `json:"status"`
	PracticeAttemptsCount int        `json:"practice_attempts_count"`
	CorrectCount          int        `json:"correct_count"`
	IncorrectCount        int        `json:"incorrect_count"`
	LastPracticedAt       *time.Time `json:"last_practiced_at"`
	CreatedAt             time.Time  `json:"created_at"`
}

// RecordOutcome applies one practice answer to the counters.
// Known is sticky: later incorrect answers do not demote the phrase.
func (p *Phrase) RecordOutcome(correct bool, at time.Time) {
	p.PracticeAttemptsCount++
	if correct {
		p.CorrectCount++
		if p.CorrectCount >= KnownThreshold {
			p.Status = StatusKnown
		}
	} else {
		p.IncorrectCount++
	}
	p.LastPracticedAt = &at
}

// PhraseInput carries the user-supplied fields of a new phrase
type PhraseInput struct {
	DanishText  string `json:"danish_text"`
	MeaningText string `json:"meaning_text"`
	Category    string `json:"category"`
}

// Normalized returns the input with whitespace trimmed and the category defaulted
func (in PhraseInput) Normalized() PhraseInput {
	out := PhraseInput{
		DanishText:  strings.TrimSpace(in.DanishText),
		MeaningText: strings.TrimSpace(in.MeaningText),
		Category:    strings.TrimSpace(in.Category),
	}
	if out.Category == "" {
		out.Category = DefaultCategory
	}
	return out
}

// PhraseUpdate is a partial update; nil fields are left untouched
type PhraseUpdate struct {
	DanishText  *string `json:"danish_text,omitempty"`
	MeaningText *string `json:"meaning_text,omitempty"`
	Category    *string `json:"category,omitempty"`
	Status      *Status `json:"status,omitempty"`
}

// Apply merges the set fields into p
func (u PhraseUpdate) Apply(p *Phrase) {
	if u.DanishText != nil {
		p.DanishText = *u.DanishText
	}
	if u.MeaningText != nil {
		p.MeaningText = *u.MeaningText
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Status != nil {
		p.Status = *u.Status
	}
}

// PhraseFilter narrows the phrase library. Empty or "All" disables a field.
type PhraseFilter struct {
	Search   string
	Category string
	Status   string
}

// Matches reports whether p passes the filter
func (f PhraseFilter) Matches(p Phrase) bool {
	if f.Category != "" && f.Category != "All" && p.Category != f.Category {
		return false
	}
	if f.Status != "" && f.Status != "All" && string(p.Status) != f.Status {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.DanishText), term) ||
		strings.Contains(strings.ToLower(p.MeaningText), term)
}

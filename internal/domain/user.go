package domain

import "time"

// User represents a registered learner
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserState represents user's current interaction state in the bot
type UserState string

const (
	StateIdle            UserState = "idle"
	StateWaitingEmail    UserState = "waiting_email"
	StateWaitingPassword UserState = "waiting_password"
	StateWaitingDanish   UserState = "waiting_danish"
	StateWaitingMeaning  UserState = "waiting_meaning"
	StateWaitingCategory UserState = "waiting_category"
	StateFlashcard       UserState = "flashcard"
	StateWaitingQuizMode UserState = "waiting_quiz_mode"
	StateWaitingAnswer   UserState = "waiting_answer"
	StateChatting        UserState = "chatting"
)

// AuthMode tells the password step what to do with the collected email
type AuthMode string

const (
	AuthSignup AuthMode = "signup"
	AuthLogin  AuthMode = "login"
)

// StateData holds temporary data for user's current state
type StateData struct {
	State    UserState
	AuthMode AuthMode
	Email    string

	// Phrase being composed
	DanishText  string
	MeaningText string

	// Practice run
	Deck      []Phrase
	Index     int
	Correct   int
	Incorrect int
	Direction QuizDirection
	Revealed  bool

	// Chat turns so far
	History []ChatMessage
}

// Current returns the phrase under review, or nil when the run is over
func (s *StateData) Current() *Phrase {
	if s.Index < 0 || s.Index >= len(s.Deck) {
		return nil
	}
	return &s.Deck[s.Index]
}

// Reviewed returns the number of answered items in the run
func (s *StateData) Reviewed() int {
	return s.Correct + s.Incorrect
}

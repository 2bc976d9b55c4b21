package domain

import "time"

// Mode is the kind of practice run a session records
type Mode string

const (
	ModeFlashcard Mode = "flashcard"
	ModeQuiz      Mode = "quiz"
)

// Valid reports whether m is a known practice mode
func (m Mode) Valid() bool {
	return m == ModeFlashcard || m == ModeQuiz
}

// QuizDirection selects which side of a phrase the learner must type
type QuizDirection string

const (
	DanishToMeaning QuizDirection = "danish-to-meaning"
	MeaningToDanish QuizDirection = "meaning-to-danish"
)

// PracticeSession is the aggregate outcome of one completed practice run
type PracticeSession struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	Mode               Mode      `json:"mode"`
	ItemsReviewedCount int       `json:"items_reviewed_count"`
	CorrectCount       int       `json:"correct_count"`
	IncorrectCount     int       `json:"incorrect_count"`
	CreatedAt          time.Time `json:"created_at"`
}

// Accuracy returns the share of correct answers in percent, rounded
func (s PracticeSession) Accuracy() int {
	if s.ItemsReviewedCount == 0 {
		return 0
	}
	return (s.CorrectCount*100 + s.ItemsReviewedCount/2) / s.ItemsReviewedCount
}

// Dashboard summarizes a learner's progress for the home view
type Dashboard struct {
	Total        int      `json:"total"`
	Learning     int      `json:"learning"`
	Known        int      `json:"known"`
	WeekSessions int      `json:"week_sessions"`
	WeeklyGoal   int      `json:"weekly_goal"`
	GoalReached  bool     `json:"goal_reached"`
	Recent       []Phrase `json:"recent"`
	Activity     []Day    `json:"activity"`
}

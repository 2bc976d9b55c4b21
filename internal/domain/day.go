package domain

import "time"

// Day represents a calendar day with the number of practice sessions on it
type Day struct {
	Date         time.Time `json:"date"`
	SessionCount int       `json:"session_count"`
}

// DateString returns date in YYYYMMDD format
func (d Day) DateString() string {
	return d.Date.Format("20060102")
}

// DisplayString returns user-friendly date string
func (d Day) DisplayString() string {
	now := time.Now()
	date := d.Date

	// Check if today
	if sameDay(date, now) {
		return "Today"
	}

	// Check if yesterday
	if sameDay(date, now.AddDate(0, 0, -1)) {
		return "Yesterday"
	}

	return date.Format("Mon 2 Jan")
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// LastDays returns the n days ending at now, oldest first, with sessions counted per day
func LastDays(sessions []PracticeSession, now time.Time, n int) []Day {
	days := make([]Day, n)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -(n - 1))
	for i := range days {
		days[i].Date = start.AddDate(0, 0, i)
	}
	for _, s := range sessions {
		created := s.CreatedAt.In(now.Location())
		for i := range days {
			if sameDay(created, days[i].Date) {
				days[i].SessionCount++
				break
			}
		}
	}
	return days
}

package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDay_DateString(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected string
	}{
		{
			name:     "date 2024-12-12",
			date:     time.Date(2024, 12, 12, 10, 0, 0, 0, time.UTC),
			expected: "20241212",
		},
		{
			name:     "date 2024-01-01",
			date:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: "20240101",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day := Day{Date: tt.date}
			result := day.DateString()
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDay_DisplayString(t *testing.T) {
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	twoDaysAgo := now.AddDate(0, 0, -2)

	tests := []struct {
		name     string
		date     time.Time
		expected string
	}{
		{
			name:     "today",
			date:     now,
			expected: "Today",
		},
		{
			name:     "yesterday",
			date:     yesterday,
			expected: "Yesterday",
		},
		{
			name:     "two days ago",
			date:     twoDaysAgo,
			expected: twoDaysAgo.Format("Mon 2 Jan"),
		},
		{
			name:     "specific date",
			date:     time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			expected: "Sat 15 Jun",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day := Day{Date: tt.date}
			result := day.DisplayString()
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestLastDays(t *testing.T) {
	now := time.Date(2024, 6, 15, 18, 0, 0, 0, time.UTC)
	sessions := []PracticeSession{
		{CreatedAt: now.Add(-time.Hour)},
		{CreatedAt: now.Add(-2 * time.Hour)},
		{CreatedAt: now.AddDate(0, 0, -3)},
		{CreatedAt: now.AddDate(0, 0, -10)},
	}

	days := LastDays(sessions, now, 7)

	assert.Len(t, days, 7)
	assert.Equal(t, "20240609", days[0].DateString())
	assert.Equal(t, "20240615", days[6].DateString())
	assert.Equal(t, 2, days[6].SessionCount)
	assert.Equal(t, 1, days[3].SessionCount)

	total := 0
	for _, d := range days {
		total += d.SessionCount
	}
	assert.Equal(t, 3, total)
}

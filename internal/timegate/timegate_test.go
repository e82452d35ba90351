package timegate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// kst builds a fixed KST wall-clock instant for test scenarios
func kst(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, KST)
}

func TestToday(t *testing.T) {
	t.Run("uses KST calendar date", func(t *testing.T) {
		// 2026-03-09 23:30 UTC is already 2026-03-10 08:30 in KST
		now := time.Date(2026, 3, 9, 23, 30, 0, 0, time.UTC)
		assert.Equal(t, "2026-03-10", Today(now))
	})

	t.Run("day boundary at KST midnight", func(t *testing.T) {
		assert.Equal(t, "2026-03-09", Today(kst(2026, 3, 9, 23, 59)))
		assert.Equal(t, "2026-03-10", Today(kst(2026, 3, 10, 0, 0)))
	})
}

func TestDaysAgo(t *testing.T) {
	now := kst(2026, 3, 10, 12, 0)
	assert.Equal(t, "2026-03-10", DaysAgo(now, 0))
	assert.Equal(t, "2026-02-08", DaysAgo(now, 30))
}

func TestIsRevealed(t *testing.T) {
	tests := []struct {
		name         string
		questionDate string
		now          time.Time
		want         bool
	}{
		{"two days ago is always revealed", "2026-03-08", kst(2026, 3, 10, 0, 1), true},
		{"a month ago is always revealed", "2026-02-10", kst(2026, 3, 10, 3, 0), true},
		{"today before 9am is hidden", "2026-03-10", kst(2026, 3, 10, 8, 59), false},
		{"today at 9am is revealed", "2026-03-10", kst(2026, 3, 10, 9, 0), true},
		{"today in the evening is revealed", "2026-03-10", kst(2026, 3, 10, 22, 0), true},
		{"yesterday before 9am is hidden", "2026-03-09", kst(2026, 3, 10, 8, 59), false},
		{"yesterday at 9am is revealed", "2026-03-09", kst(2026, 3, 10, 9, 0), true},
		{"future date is never revealed", "2026-03-11", kst(2026, 3, 10, 23, 0), false},
		{"malformed date is hidden", "not-a-date", kst(2026, 3, 10, 12, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRevealed(tt.questionDate, tt.now))
		})
	}
}

func TestIsRevealed_TimezoneIndependent(t *testing.T) {
	// The same instant expressed in UTC must produce the same verdict as in KST.
	// 08:30 KST on the question date: still hidden.
	instant := kst(2026, 3, 10, 8, 30)
	assert.False(t, IsRevealed("2026-03-10", instant))
	assert.False(t, IsRevealed("2026-03-10", instant.UTC()))

	// 09:30 KST: revealed, no matter how the caller's clock is zoned.
	instant = kst(2026, 3, 10, 9, 30)
	assert.True(t, IsRevealed("2026-03-10", instant))
	assert.True(t, IsRevealed("2026-03-10", instant.UTC()))
}

func TestTimeUntilDeadline(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"23:30 leaves 30 minutes", kst(2026, 3, 10, 23, 30), "30분"},
		{"21:15 leaves 2h45m", kst(2026, 3, 10, 21, 15), "2시간 45분"},
		{"midnight leaves a full day", kst(2026, 3, 10, 0, 0), "24시간 0분"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeUntilDeadline(tt.now))
		})
	}
}

func TestTimeUntilReveal(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"22:00 leaves 11h to next 9am", kst(2026, 3, 10, 22, 0), "11시간 0분"},
		{"08:30 leaves until tomorrow 9am", kst(2026, 3, 10, 8, 30), "24시간 30분"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeUntilReveal(tt.now))
		})
	}
}

func TestFormatDate(t *testing.T) {
	// 2026-09-01 is a Tuesday
	assert.Equal(t, "2026년 9월 1일 (화)", FormatDate("2026-09-01"))
	// Unparseable input falls back to the raw string
	assert.Equal(t, "oops", FormatDate("oops"))
}

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekRange(t *testing.T) {
	// Wednesday, March 12 2025
	wednesday := time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC)

	t.Run("CurrentWeekStartsOnSunday", func(t *testing.T) {
		weekStart, weekEnd := WeekRange(wednesday, 1)

		assert.Equal(t, time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), weekStart)
		assert.Equal(t, time.Sunday, weekStart.Weekday())
		assert.Equal(t, time.Saturday, weekEnd.Weekday())
		assert.Equal(t, weekStart.AddDate(0, 0, 7).Add(-time.Nanosecond), weekEnd)
	})

	t.Run("SundayIsItsOwnWeekStart", func(t *testing.T) {
		sunday := time.Date(2025, 3, 9, 8, 0, 0, 0, time.UTC)
		weekStart, _ := WeekRange(sunday, 1)

		assert.Equal(t, time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), weekStart)
	})

	t.Run("EarlierWeeksStepBackSevenDays", func(t *testing.T) {
		week1Start, _ := WeekRange(wednesday, 1)
		week2Start, _ := WeekRange(wednesday, 2)
		week3Start, _ := WeekRange(wednesday, 3)

		assert.Equal(t, week1Start.AddDate(0, 0, -7), week2Start)
		assert.Equal(t, week1Start.AddDate(0, 0, -14), week3Start)
		assert.Equal(t, time.Date(2025, 2, 23, 0, 0, 0, 0, time.UTC), week3Start)
	})

	t.Run("AddressingShiftsAcrossSundayRollover", func(t *testing.T) {
		// The same calendar week is week 1 today and week 2 a week later.
		thisWeek, _ := WeekRange(wednesday, 1)
		sameWeekLater, _ := WeekRange(wednesday.AddDate(0, 0, 7), 2)

		assert.Equal(t, thisWeek, sameWeekLater)
	})
}

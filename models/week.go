package models

import "time"

// Weeks run Sunday through Saturday and are addressed relative to "now":
// week 1 is the week containing now, week n is n-1 weeks earlier. The same
// arithmetic backs both the ledger read path and the payment write path; a
// record written for week n is only found again if both sides agree on the
// range. Note the addressing is recomputed on every call, so what is week 1
// today becomes week 2 next Sunday. Stored records are keyed by this relative
// number; switching to an absolute week index would need a data migration.
func WeekRange(now time.Time, weekNumber int) (weekStart, weekEnd time.Time) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	daysBack := int(day.Weekday()) + 7*(weekNumber-1)
	weekStart = day.AddDate(0, 0, -daysBack)
	weekEnd = weekStart.AddDate(0, 0, 7).Add(-time.Nanosecond)
	return weekStart, weekEnd
}

package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLatestPaymentRecord(t *testing.T) {
	base := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)

	t.Run("Empty", func(t *testing.T) {
		assert.Nil(t, LatestPaymentRecord(nil))
	})

	t.Run("SingleRecord", func(t *testing.T) {
		records := []WeeklyPaymentRecord{{ID: "a", MarkedAt: base}}
		assert.Equal(t, "a", LatestPaymentRecord(records).ID)
	})

	t.Run("DuplicatesResolveToLatestMark", func(t *testing.T) {
		records := []WeeklyPaymentRecord{
			{ID: "first", HasPaid: true, MarkedAt: base},
			{ID: "latest", HasPaid: false, MarkedAt: base.Add(2 * time.Hour)},
			{ID: "middle", HasPaid: true, MarkedAt: base.Add(time.Hour)},
		}

		latest := LatestPaymentRecord(records)
		assert.Equal(t, "latest", latest.ID)
		assert.False(t, latest.HasPaid)
	})
}

func TestWeeklyPaymentRecordValidate(t *testing.T) {
	weekStart := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	valid := WeeklyPaymentRecord{
		MemberID:     "m1",
		WeekStart:    weekStart,
		WeekEnd:      weekStart.AddDate(0, 0, 7).Add(-time.Nanosecond),
		WeekNumber:   1,
		Contribution: decimal.NewFromInt(500),
	}

	assert.NoError(t, valid.Validate())

	noMember := valid
	noMember.MemberID = ""
	assert.Error(t, noMember.Validate())

	badWeek := valid
	badWeek.WeekNumber = 0
	assert.Error(t, badWeek.Validate())

	negative := valid
	negative.Contribution = decimal.NewFromInt(-1)
	assert.Error(t, negative.Validate())
}

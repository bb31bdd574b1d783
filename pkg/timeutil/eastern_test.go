package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayCrossesMidnightEastern(t *testing.T) {
	// 03:30 UTC is 23:30 ET the previous day (EDT, UTC-4).
	utc := time.Date(2026, 7, 15, 3, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-07-14", Day(utc))

	// 05:30 UTC is already 01:30 ET the same day.
	utc = time.Date(2026, 7, 15, 5, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-07-15", Day(utc))
}

func TestHourUsesEastern(t *testing.T) {
	utc := time.Date(2026, 1, 10, 13, 0, 0, 0, time.UTC) // 08:00 EST
	assert.Equal(t, 8, Hour(utc))
}

func TestIsWeekend(t *testing.T) {
	sat := time.Date(2026, 8, 29, 17, 0, 0, 0, time.UTC)
	mon := time.Date(2026, 8, 31, 17, 0, 0, 0, time.UTC)
	assert.True(t, IsWeekend(sat))
	assert.False(t, IsWeekend(mon))
}

func TestPrevDay(t *testing.T) {
	assert.Equal(t, "2026-02-28", PrevDay("2026-03-01"))
	assert.Equal(t, "2025-12-31", PrevDay("2026-01-01"))
	assert.Equal(t, "not-a-day", PrevDay("not-a-day"))
}

func TestISOWeek(t *testing.T) {
	// 2026-01-01 is a Thursday, ISO week 1.
	d := time.Date(2026, 1, 1, 12, 0, 0, 0, Location())
	assert.Equal(t, "2026-W01", ISOWeek(d))
}

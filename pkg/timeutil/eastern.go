package timeutil

import "time"

// All calendar decisions in the product (upload slots, streaks, triple-day,
// morning/night buckets) are made in US Eastern Time, independent of server
// locale.

const DayLayout = "2006-01-02"

var eastern *time.Location

func init() {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		// tzdata missing on the host; a fixed offset is wrong across DST but
		// keeps the process up.
		loc = time.FixedZone("EST", -5*60*60)
	}
	eastern = loc
}

func Location() *time.Location {
	return eastern
}

// Day returns the Eastern-Time calendar day of t as "YYYY-MM-DD".
func Day(t time.Time) string {
	return t.In(eastern).Format(DayLayout)
}

// Today returns the current Eastern-Time calendar day.
func Today() string {
	return Day(time.Now())
}

// Hour returns the Eastern-Time hour of day of t.
func Hour(t time.Time) int {
	return t.In(eastern).Hour()
}

// IsWeekend reports whether t falls on Saturday or Sunday Eastern Time.
func IsWeekend(t time.Time) bool {
	wd := t.In(eastern).Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// PrevDay returns the day string one calendar day before day. Invalid input
// comes back unchanged.
func PrevDay(day string) string {
	t, err := time.ParseInLocation(DayLayout, day, eastern)
	if err != nil {
		return day
	}
	return t.AddDate(0, 0, -1).Format(DayLayout)
}

// ISOWeek returns "2026-W35"-style keys for weekly leaderboards, computed in
// Eastern Time.
func ISOWeek(t time.Time) string {
	year, week := t.In(eastern).ISOWeek()
	return isoWeekKey(year, week)
}

func isoWeekKey(year, week int) string {
	const digits = "0123456789"
	b := []byte{0, 0, 0, 0, '-', 'W', 0, 0}
	for i := 3; i >= 0; i-- {
		b[i] = digits[year%10]
		year /= 10
	}
	b[6] = digits[week/10]
	b[7] = digits[week%10]
	return string(b)
}

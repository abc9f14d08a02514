package common

import "time"

// Calendar month key used for quota windows, e.g. "2026-09".
func GetMonth() string {
	return GetMonthFromTime(time.Now().UTC())
}

func GetMonthFromTime(t time.Time) string {
	return t.Format("2006-01")
}

func GetMonthOffset(offset int) string {
	t := time.Now().UTC()
	t = t.AddDate(0, -offset, 0)
	return t.Format("2006-01")
}

func GetDate() string {
	return GetDateFromTime(time.Now().UTC())
}

func GetDateFromTime(t time.Time) string {
	return t.Format("2006-01-02")
}

package validators

import (
	"regexp"
	"time"
)

var (
	dateRx = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRx = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// IsDate aceita apenas YYYY-MM-DD com data de calendário real.
func IsDate(s string) bool {
	if !dateRx.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// IsTimeOfDay aceita apenas HH:MM em 24h.
func IsTimeOfDay(s string) bool {
	if !timeRx.MatchString(s) {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

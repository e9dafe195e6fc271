package utils

import (
	"time"
)

func NowISO() string {
	return FormatTimeISO(time.Now())
}

func FormatTimeISO(t time.Time) string {
	return t.UTC().Format(ISOTimeFormat)
}

// ParseTimeISO accepts any RFC 3339 timestamp, fractional seconds included.
func ParseTimeISO(timeStr string) (time.Time, error) {
	return time.Parse(time.RFC3339, timeStr)
}

// NormalizeTimeISO reformats an RFC 3339 timestamp into the stored form.
func NormalizeTimeISO(timeStr string) (string, error) {
	t, err := ParseTimeISO(timeStr)
	if err != nil {
		return "", err
	}
	return FormatTimeISO(t), nil
}

// NowMillis is the current unix time in milliseconds, the unit used for
// live samples and dispatch snapshots.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

package service

import (
	"crypto/rand"
	"fmt"
	"time"
)

// recordNumber returns a human-facing reference like CLM-2024-1A2B3C4D.
func recordNumber(prefix string, now time.Time) string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%s-%d-%08X", prefix, now.Year(), now.UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("%s-%d-%08X", prefix, now.Year(), b)
}

// dayOf truncates t to midnight UTC.
func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

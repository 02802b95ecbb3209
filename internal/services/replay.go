package services

import (
	"strconv"
	"time"
)

// DefaultTimestampTolerance максимальний вік callback запиту за замовчуванням
const DefaultTimestampTolerance = 300 * time.Second

// IsFresh перевіряє що timestamp (Unix секунди) не старший за tolerance.
// Некоректний timestamp та timestamp з майбутнього відхиляються.
func IsFresh(timestamp string, tolerance time.Duration, now time.Time) bool {
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return false
	}

	age := now.Unix() - ts
	if age < 0 {
		return false
	}
	return age <= int64(tolerance/time.Second)
}

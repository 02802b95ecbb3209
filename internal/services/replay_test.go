package services

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIsFresh(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	tolerance := 30 * time.Second
	ts := func(offset int64) string {
		return strconv.FormatInt(now.Unix()+offset, 10)
	}

	tests := []struct {
		name      string
		timestamp string
		want      bool
	}{
		{name: "ten seconds old", timestamp: ts(-10), want: true},
		{name: "exactly at tolerance", timestamp: ts(-30), want: true},
		{name: "one second past tolerance", timestamp: ts(-31), want: false},
		{name: "now", timestamp: ts(0), want: true},
		{name: "future", timestamp: ts(5), want: false},
		{name: "non numeric", timestamp: "yesterday", want: false},
		{name: "empty", timestamp: "", want: false},
		{name: "fractional", timestamp: "1699999990.5", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsFresh(tt.timestamp, tolerance, now))
		})
	}
}

func TestIsFreshHourOldWithDefaultTolerance(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	hourAgo := strconv.FormatInt(now.Add(-time.Hour).Unix(), 10)

	require.False(t, IsFresh(hourAgo, DefaultTimestampTolerance, now))
}

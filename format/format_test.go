package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDate(t *testing.T) {
	ts := time.Date(2023, 1, 15, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "Jan 15, 2023", Date(ts))
	assert.Equal(t, "Jan 15, 2023 9:30 AM", DateTime(ts))
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 6, 10, 18, 0, 0, 0, time.UTC)

	today := time.Date(2024, 6, 10, 9, 15, 0, 0, time.UTC)
	assert.Equal(t, "Today at 9:15 AM", RelativeTime(today, now))

	yesterday := time.Date(2024, 6, 9, 22, 45, 0, 0, time.UTC)
	assert.Equal(t, "Yesterday at 10:45 PM", RelativeTime(yesterday, now))

	older := time.Date(2024, 5, 1, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "May 1, 2024 2:30 PM", RelativeTime(older, now))
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"seconds", now.Add(-30 * time.Second), "less than a minute ago"},
		{"one minute", now.Add(-90 * time.Second), "a minute ago"},
		{"minutes", now.Add(-25 * time.Minute), "25 minutes ago"},
		{"one hour", now.Add(-90 * time.Minute), "an hour ago"},
		{"hours", now.Add(-7 * time.Hour), "7 hours ago"},
		{"one day", now.Add(-30 * time.Hour), "a day ago"},
		{"days", now.Add(-5 * 24 * time.Hour), "5 days ago"},
		{"one month", now.Add(-40 * 24 * time.Hour), "a month ago"},
		{"months", now.Add(-100 * 24 * time.Hour), "3 months ago"},
		{"one year", now.Add(-400 * 24 * time.Hour), "a year ago"},
		{"years", now.Add(-3 * 365 * 24 * time.Hour), "3 years ago"},
		{"future", now.Add(10 * time.Minute), "in 10 minutes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeAgo(tt.t, now))
		})
	}
}

func TestProgressPercentage(t *testing.T) {
	assert.Equal(t, 0, ProgressPercentage(0, 0))
	assert.Equal(t, 0, ProgressPercentage(5, 0))
	assert.Equal(t, 38, ProgressPercentage(3, 8))
	assert.Equal(t, 100, ProgressPercentage(5, 5))
	assert.Equal(t, 50, ProgressPercentage(1, 2))
	assert.Equal(t, 33, ProgressPercentage(1, 3))
	assert.Equal(t, 67, ProgressPercentage(2, 3))
}

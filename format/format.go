// Package format provides display formatting for timestamps and
// completion percentages.
package format

import (
	"fmt"
	"math"
	"time"
)

// Date formats a timestamp as "Jan 2, 2006".
func Date(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// DateTime formats a timestamp as "Jan 2, 2006 3:04 PM".
func DateTime(t time.Time) string {
	return t.Format("Jan 2, 2006 3:04 PM")
}

// RelativeTime formats t relative to now: "Today at 3:04 PM" and
// "Yesterday at 3:04 PM" for the two most recent days, the full
// date-time otherwise.
func RelativeTime(t, now time.Time) string {
	switch {
	case sameDay(t, now):
		return "Today at " + t.Format("3:04 PM")
	case sameDay(t, now.AddDate(0, 0, -1)):
		return "Yesterday at " + t.Format("3:04 PM")
	default:
		return DateTime(t)
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// TimeAgo describes how long ago t was relative to now, e.g.
// "5 minutes ago". Future timestamps read "in 5 minutes".
func TimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	suffix := " ago"
	if d < 0 {
		d = -d
		suffix = ""
	}

	var phrase string
	switch {
	case d < time.Minute:
		phrase = "less than a minute"
	case d < 2*time.Minute:
		phrase = "a minute"
	case d < time.Hour:
		phrase = fmt.Sprintf("%d minutes", int(d.Minutes()))
	case d < 2*time.Hour:
		phrase = "an hour"
	case d < 24*time.Hour:
		phrase = fmt.Sprintf("%d hours", int(d.Hours()))
	case d < 48*time.Hour:
		phrase = "a day"
	case d < 30*24*time.Hour:
		phrase = fmt.Sprintf("%d days", int(d.Hours()/24))
	case d < 60*24*time.Hour:
		phrase = "a month"
	case d < 365*24*time.Hour:
		phrase = fmt.Sprintf("%d months", int(d.Hours()/(24*30)))
	case d < 2*365*24*time.Hour:
		phrase = "a year"
	default:
		phrase = fmt.Sprintf("%d years", int(d.Hours()/(24*365)))
	}

	if suffix == "" {
		return "in " + phrase
	}
	return phrase + suffix
}

// ProgressPercentage returns the completion percentage rounded to the
// nearest integer. A zero total yields 0, never a division by zero.
func ProgressPercentage(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

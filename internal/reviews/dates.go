package reviews

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/remymerlhiot/cote-sud-api/internal/canon"
)

var reRelative = regexp.MustCompile(`il y a (une?|\d+) (minute|heure|jour|semaine|mois|an)s?`)

var frenchMonths = strings.NewReplacer(
	"janvier", "january", "fevrier", "february", "mars", "march", "avril", "april",
	"mai", "may", "juin", "june", "juillet", "july", "aout", "august",
	"septembre", "september", "octobre", "october", "novembre", "november", "decembre", "december",
)

// ParseDate reads a review date: "il y a 3 semaines", "hier", "12 mars 2024"
// or any layout dateparse knows, day first. Relative dates count back from
// now. The result is truncated to the day.
func ParseDate(s string, now time.Time) (time.Time, bool) {
	f := canon.Fold(s)
	switch {
	case f == "":
		return time.Time{}, false
	case strings.Contains(f, "aujourd"):
		return day(now), true
	case f == "hier":
		return day(now.AddDate(0, 0, -1)), true
	}
	if m := reRelative.FindStringSubmatch(f); m != nil {
		n := 1
		if v, err := strconv.Atoi(m[1]); err == nil {
			n = v
		}
		switch m[2] {
		case "jour":
			now = now.AddDate(0, 0, -n)
		case "semaine":
			now = now.AddDate(0, 0, -7*n)
		case "mois":
			now = now.AddDate(0, -n, 0)
		case "an":
			now = now.AddDate(-n, 0, 0)
		}
		return day(now), true
	}
	t, err := dateparse.ParseIn(frenchMonths.Replace(f), time.UTC, dateparse.PreferMonthFirst(false))
	if err != nil {
		return time.Time{}, false
	}
	return day(t), true
}

// Package reviews collects client reviews of the agency and stores them.
package reviews

import "time"

// Review is one client review. Author and Date identify it.
type Review struct {
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	Date      time.Time `json:"date"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
}

const (
	SourceGoogle    = "google"
	SourceSimulated = "simulated"
)

func validRating(n int) bool { return n >= 1 && n <= 5 }

// day drops the time of day, so that the same review read twice keeps its
// identity.
func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

package domain

import "time"

// Kind classifies an opportunity; the closed set drives icon selection
// in the client.
type Kind string

const (
	KindScholarship Kind = "scholarship"
	KindCollege     Kind = "college"
	KindProgram     Kind = "program"
)

// ParseKind normalizes a free-text kind label, falling back to
// KindScholarship for anything outside the closed set.
func ParseKind(s string) Kind {
	switch Kind(s) {
	case KindCollege:
		return KindCollege
	case KindProgram:
		return KindProgram
	default:
		return KindScholarship
	}
}

type Opportunity struct {
	ID          string
	Title       string
	Kind        Kind
	Deadline    time.Time
	AwardAmount string
	Eligibility string
	Details     string
	Link        string
	Tags        []string
}

type Mentor struct {
	ID                string
	Name              string
	Specialty         string
	Bio               string
	Experience        string
	ContactInfo       string
	Rating            float64
	SessionsCompleted int
}

type Resource struct {
	ID          string
	Title       string
	Description string
	URL         string
	Category    string
	Icon        string
	IsExternal  bool
}

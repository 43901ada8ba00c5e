package performance

import "time"

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusSubmitted Status = "SUBMITTED"
	StatusPublished Status = "PUBLISHED"
)

type PotentialRating string

const (
	PotentialLow    PotentialRating = "LOW"
	PotentialMedium PotentialRating = "MEDIUM"
	PotentialHigh   PotentialRating = "HIGH"
)

// Appraisal is one employee's result in a review cycle. Scores run 1 to 5.
type Appraisal struct {
	ID          string
	EmployeeID  string
	CycleID     string
	RaterID     string
	Score       float64
	Potential   *PotentialRating
	Status      Status
	PublishedAt time.Time
}

// LatestByEmployee keeps the most recently published appraisal per employee.
func LatestByEmployee(appraisals []Appraisal) map[string]Appraisal {
	out := make(map[string]Appraisal, len(appraisals))
	for _, a := range appraisals {
		if a.Status != StatusPublished {
			continue
		}
		if cur, ok := out[a.EmployeeID]; !ok || a.PublishedAt.After(cur.PublishedAt) {
			out[a.EmployeeID] = a
		}
	}
	return out
}

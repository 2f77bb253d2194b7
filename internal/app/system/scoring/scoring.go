// internal/app/system/scoring/scoring.go
package scoring

import "math"

// Ratings are the four 1-5 star values an admin gives when rating an
// employee.
type Ratings struct {
	Overall         int
	Communication   int
	Teamwork        int
	TechnicalSkills int
}

// Policy converts star ratings into the percentage scores stored on the
// employee record. The formula (simple mean of the four ratings scaled by
// Multiplier) is a policy choice, not a derived invariant, so it lives
// here behind configuration rather than at the call site.
type Policy struct {
	// Multiplier scales a 1-5 rating to a percentage. 20 maps 5 stars to
	// 100%.
	Multiplier int
}

// DefaultPolicy matches the historical behavior: average of four ratings
// times twenty, rounded.
func DefaultPolicy() Policy {
	return Policy{Multiplier: 20}
}

// OverallScore returns the employee's aggregate performance score.
func (p Policy) OverallScore(r Ratings) int {
	mean := float64(r.Overall+r.Communication+r.Teamwork+r.TechnicalSkills) / 4.0
	return int(math.Round(mean * float64(p.Multiplier)))
}

// MetricValue converts a single star rating to its stored percentage.
func (p Policy) MetricValue(rating int) int {
	return rating * p.Multiplier
}

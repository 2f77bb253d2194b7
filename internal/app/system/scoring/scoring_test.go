package scoring

import "testing"

func TestOverallScore(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name    string
		ratings Ratings
		want    int
	}{
		{"all fives", Ratings{5, 5, 5, 5}, 100},
		{"all ones", Ratings{1, 1, 1, 1}, 20},
		{"mixed", Ratings{Overall: 4, Communication: 5, Teamwork: 3, TechnicalSkills: 4}, 80},
		{"uneven sum", Ratings{Overall: 3, Communication: 3, Teamwork: 3, TechnicalSkills: 4}, 65},
		{"low sum", Ratings{Overall: 2, Communication: 2, Teamwork: 2, TechnicalSkills: 3}, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.OverallScore(tt.ratings); got != tt.want {
				t.Errorf("OverallScore(%+v) = %d, want %d", tt.ratings, got, tt.want)
			}
		})
	}
}

func TestMetricValue(t *testing.T) {
	p := DefaultPolicy()
	for rating, want := range map[int]int{1: 20, 3: 60, 5: 100} {
		if got := p.MetricValue(rating); got != want {
			t.Errorf("MetricValue(%d) = %d, want %d", rating, got, want)
		}
	}
}

func TestCustomMultiplier(t *testing.T) {
	p := Policy{Multiplier: 10}
	if got := p.OverallScore(Ratings{5, 5, 5, 5}); got != 50 {
		t.Errorf("OverallScore with multiplier 10 = %d, want 50", got)
	}
	if got := p.MetricValue(4); got != 40 {
		t.Errorf("MetricValue(4) with multiplier 10 = %d, want 40", got)
	}
	// 13/4 * 10 = 32.5 rounds away from zero.
	if got := p.OverallScore(Ratings{Overall: 4, Communication: 3, Teamwork: 3, TechnicalSkills: 3}); got != 33 {
		t.Errorf("OverallScore rounding = %d, want 33", got)
	}
}

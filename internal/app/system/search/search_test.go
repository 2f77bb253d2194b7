package search

import "testing"

func TestEmailPivot(t *testing.T) {
	cases := []struct {
		q    string
		want bool
	}{
		{"jose@example.com", true},
		{"jose@", true},
		{"jose garcia", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := EmailPivot(tc.q); got != tc.want {
			t.Errorf("EmailPivot(%q) = %v, want %v", tc.q, got, tc.want)
		}
	}
}

func TestTerm_FoldsNames(t *testing.T) {
	if got := Term("  José "); got != "jose" {
		t.Errorf("Term: got %q, want %q", got, "jose")
	}
}

func TestTerm_LowercasesEmails(t *testing.T) {
	if got := Term(" Jose@Example.COM "); got != "jose@example.com" {
		t.Errorf("Term: got %q, want %q", got, "jose@example.com")
	}
}

func TestTerm_Empty(t *testing.T) {
	if got := Term("   "); got != "" {
		t.Errorf("Term: got %q, want empty", got)
	}
}

func TestPrefixRegex_EscapesMeta(t *testing.T) {
	re := PrefixRegex("a.b")
	if re.Pattern != `^a\.b` {
		t.Errorf("pattern: got %q", re.Pattern)
	}
}

package results

import (
	"net/url"
	"testing"

	"github.com/jimezsa/jobflow/internal/models"
)

func TestParseStateDefaults(t *testing.T) {
	state := ParseState(url.Values{"prefId": {" p1 "}, "page": {"-4"}, "source": {"bogus"}, "days": {"5"}})
	if state.PrefID != "p1" || state.Page != 0 {
		t.Fatalf("unexpected state %+v", state)
	}
	if state.Applied != models.DefaultFilters() {
		t.Fatalf("invalid values should fall back to defaults, got %+v", state.Applied)
	}
}

func TestStateValues(t *testing.T) {
	state := State{
		PrefID: "p 1",
		Page:   2,
		Applied: models.Filters{
			Source:          models.SourceRemotive,
			Recency:         14,
			CompanyContains: "Acme Corp",
			SortBy:          models.SortRecency,
		},
	}
	values := state.Values()
	back := ParseState(values)
	if back != state {
		t.Fatalf("ParseState(Values()) = %+v, want %+v", back, state)
	}

	defaults := State{PrefID: "p1", Applied: models.DefaultFilters()}.Values()
	for _, key := range []string{KeySource, KeyDays, KeyCompany, KeySort} {
		if defaults.Has(key) {
			t.Fatalf("default filters should omit %s: %s", key, defaults.Encode())
		}
	}
}

func TestParseJump(t *testing.T) {
	if _, ok := ParseJump("0", 3); ok {
		t.Fatalf("0 must be rejected")
	}
	if page, ok := ParseJump("3", 3); !ok || page != 2 {
		t.Fatalf("ParseJump(3) = %d, %v", page, ok)
	}
	if _, ok := ParseJump("4", 3); ok {
		t.Fatalf("4 of 3 must be rejected")
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct{ total, size, want int }{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{25, 0, 1},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.size); got != tc.want {
			t.Fatalf("TotalPages(%d, %d) = %d, want %d", tc.total, tc.size, got, tc.want)
		}
	}
}

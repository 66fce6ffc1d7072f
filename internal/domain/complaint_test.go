package domain

import "testing"

func strPtr(s string) *string { return &s }

func TestSortForDisplay(t *testing.T) {
	complaints := []Complaint{
		{ID: "c1", Status: ComplaintStatusResolved},
		{ID: "c2", Status: ComplaintStatusInProgress, AssignedTo: strPtr("s1")},
		{ID: "c3", Status: ComplaintStatusPending, AssignedTo: strPtr("s1")},
		{ID: "c4", Status: ComplaintStatusPending},
		{ID: "c5", Status: ComplaintStatusPending},
	}

	SortForDisplay(complaints)

	want := []string{"c4", "c5", "c3", "c2", "c1"}
	for i, id := range want {
		if complaints[i].ID != id {
			t.Fatalf("position %d = %s, want %s (full order %v)", i, complaints[i].ID, id, ids(complaints))
		}
	}
}

func TestSortForDisplayIsStable(t *testing.T) {
	complaints := []Complaint{
		{ID: "a", Status: ComplaintStatusPending},
		{ID: "b", Status: ComplaintStatusPending},
		{ID: "c", Status: ComplaintStatusPending},
	}
	SortForDisplay(complaints)
	SortForDisplay(complaints)
	if got := ids(complaints); got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("equal-rank order changed: %v", got)
	}
}

func ids(complaints []Complaint) []string {
	out := make([]string, len(complaints))
	for i, c := range complaints {
		out[i] = c.ID
	}
	return out
}

func TestValidStatus(t *testing.T) {
	for _, s := range []ComplaintStatus{ComplaintStatusPending, ComplaintStatusInProgress, ComplaintStatusResolved} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false", s)
		}
	}
	for _, s := range []ComplaintStatus{"", "closed", "Pending", "in_progress"} {
		if ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = true", s)
		}
	}
}

func TestValidCategory(t *testing.T) {
	for _, c := range []ComplaintCategory{CategoryElectricity, CategoryPlumbing, CategoryCarpentry, CategoryGeneral} {
		if !ValidCategory(c) {
			t.Errorf("ValidCategory(%q) = false", c)
		}
	}
	if ValidCategory("roofing") {
		t.Error(`ValidCategory("roofing") = true`)
	}
}

func TestEligibleTrade(t *testing.T) {
	cases := []struct {
		category ComplaintCategory
		want     *Trade
	}{
		{CategoryElectricity, tradePtr(TradeElectrician)},
		{CategoryPlumbing, tradePtr(TradePlumber)},
		{CategoryCarpentry, tradePtr(TradeCarpenter)},
		{CategoryGeneral, nil},
	}
	for _, tc := range cases {
		got := tc.category.EligibleTrade()
		switch {
		case tc.want == nil && got != nil:
			t.Errorf("%s: trade = %q, want nil", tc.category, *got)
		case tc.want != nil && (got == nil || *got != *tc.want):
			t.Errorf("%s: trade = %v, want %q", tc.category, got, *tc.want)
		}
	}
}

func tradePtr(t Trade) *Trade { return &t }

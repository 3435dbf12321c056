package analysis

import "testing"

func TestBudgetUpperBound(t *testing.T) {
	cases := map[string]float64{
		"$500-1000":      1000,
		"$1,000-2,000":   2000,
		"$2k - $5k":      5000,
		"around $2,500":  2500,
		"$1.5m":          1500000,
		"flexible":       0,
		"":               0,
		"$300 per month": 300,
	}
	for in, want := range cases {
		if got := BudgetUpperBound(in); got != want {
			t.Errorf("BudgetUpperBound(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestClampCeiling(t *testing.T) {
	if got := ClampCeiling(-5); got != 0 {
		t.Errorf("negative: %d", got)
	}
	if got := ClampCeiling(MaxBudgetCeiling + 1); got != MaxBudgetCeiling {
		t.Errorf("over: %d", got)
	}
	if got := ClampCeiling(1200); got != 1200 {
		t.Errorf("within: %d", got)
	}
}

func TestFlagOverBudget(t *testing.T) {
	recs := []CampaignRecommendation{
		{Title: "a", Budget: "$500-1000"},
		{Title: "b", Budget: "$2,500"},
		{Title: "c", Budget: "ask us"},
	}
	if n := FlagOverBudget(recs, 2000); n != 1 {
		t.Fatalf("flagged = %d, want 1", n)
	}
	if recs[0].ExceedsBudget || !recs[1].ExceedsBudget || recs[2].ExceedsBudget {
		t.Errorf("flags = %v %v %v", recs[0].ExceedsBudget, recs[1].ExceedsBudget, recs[2].ExceedsBudget)
	}

	// no ceiling leaves every flag untouched
	if n := FlagOverBudget(recs, 0); n != 0 {
		t.Errorf("zero ceiling flagged %d", n)
	}
}

package analysis

import (
	"regexp"
	"strconv"
	"strings"
)

// MaxBudgetCeiling bounds the budget a caller may request campaigns for.
const MaxBudgetCeiling = 50000

var amountRx = regexp.MustCompile(`(?i)\$?\s*(\d[\d,]*(?:\.\d+)?)\s*(k|m)?\b`)

// BudgetAmounts returns every dollar amount in a free-text budget like
// "$500-1,000" or "$2k - $5k", in order of appearance.
func BudgetAmounts(s string) []float64 {
	var out []float64
	for _, m := range amountRx.FindAllStringSubmatch(s, -1) {
		n, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			continue
		}
		switch strings.ToLower(m[2]) {
		case "k":
			n *= 1000
		case "m":
			n *= 1000000
		}
		out = append(out, n)
	}
	return out
}

// BudgetUpperBound is the largest amount in s, or 0 when none is present.
func BudgetUpperBound(s string) float64 {
	var max float64
	for _, n := range BudgetAmounts(s) {
		if n > max {
			max = n
		}
	}
	return max
}

// ClampCeiling keeps a requested ceiling within [0, MaxBudgetCeiling].
func ClampCeiling(n int) int {
	if n < 0 {
		return 0
	}
	if n > MaxBudgetCeiling {
		return MaxBudgetCeiling
	}
	return n
}

// FlagOverBudget marks recommendations whose budget upper bound exceeds the ceiling
// and returns how many were flagged.
func FlagOverBudget(recs []CampaignRecommendation, ceiling int) int {
	if ceiling <= 0 {
		return 0
	}
	flagged := 0
	for i := range recs {
		recs[i].ExceedsBudget = BudgetUpperBound(recs[i].Budget) > float64(ceiling)
		if recs[i].ExceedsBudget {
			flagged++
		}
	}
	return flagged
}

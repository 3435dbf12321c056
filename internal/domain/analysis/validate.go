package analysis

import (
	"fmt"
	"strings"
)

// ParseAudienceType matches case-insensitively against the known audience types.
func ParseAudienceType(s string) (AudienceType, bool) {
	for _, t := range []AudienceType{AudienceConsumers, AudienceBusiness, AudienceGovernment} {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, true
		}
	}
	return "", false
}

// ParseDifficulty matches case-insensitively against Easy/Medium/Hard.
func ParseDifficulty(s string) (Difficulty, bool) {
	for _, d := range []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		if strings.EqualFold(strings.TrimSpace(s), string(d)) {
			return d, true
		}
	}
	return "", false
}

// Validate checks required fields and enum membership, canonicalising enums and
// replacing nil lists with empty ones.
func (a *WebsiteAnalysis) Validate() error {
	v := &ValidationError{Kind: "website analysis"}
	if strings.TrimSpace(a.ProductOverview) == "" {
		v.add("productOverview", "required")
	}
	if strings.TrimSpace(a.CoreValueProposition) == "" {
		v.add("coreValueProposition", "required")
	}
	if t, ok := ParseAudienceType(string(a.TargetAudience.Type)); ok {
		a.TargetAudience.Type = t
	} else {
		v.add("targetAudience.type", fmt.Sprintf("%q is not one of Consumers, Business, Government", a.TargetAudience.Type))
	}
	a.TargetAudience.Segments = orEmpty(a.TargetAudience.Segments)
	a.Goal = orEmpty(a.Goal)
	a.Strengths = orEmpty(a.Strengths)
	a.Constraints = orEmpty(a.Constraints)
	a.PreferredChannels = orEmpty(a.PreferredChannels)
	return v.orNil()
}

// Validate checks a single recommendation. The caller fills the ID.
func (r *CampaignRecommendation) Validate() error {
	v := &ValidationError{Kind: "campaign recommendation"}
	if strings.TrimSpace(r.Title) == "" {
		v.add("title", "required")
	}
	if d, ok := ParseDifficulty(string(r.Difficulty)); ok {
		r.Difficulty = d
	} else {
		v.add("difficulty", fmt.Sprintf("%q is not one of Easy, Medium, Hard", r.Difficulty))
	}
	r.Insights = orEmpty(r.Insights)
	return v.orNil()
}

// ValidateRecommendations validates every item and reports problems with their index.
func ValidateRecommendations(recs []CampaignRecommendation) error {
	v := &ValidationError{Kind: "campaign recommendations"}
	for i := range recs {
		err := recs[i].Validate()
		if ve, ok := err.(*ValidationError); ok {
			for _, f := range ve.Fields {
				v.add(fmt.Sprintf("[%d].%s", i, f.Field), f.Problem)
			}
		}
	}
	return v.orNil()
}

// Validate is permissive: only companyOverview is required, missing lists default to empty.
func (s *MarketingStrategy) Validate() error {
	v := &ValidationError{Kind: "marketing strategy"}
	if strings.TrimSpace(s.CompanyOverview) == "" {
		v.add("companyOverview", "required")
	}
	s.TargetAudience.Segments = orEmpty(s.TargetAudience.Segments)
	s.IndustryInsights = orEmpty(s.IndustryInsights)
	s.StrategicObjectives = orEmpty(s.StrategicObjectives)
	s.KeyMarketingGoals.ShortTerm = orEmpty(s.KeyMarketingGoals.ShortTerm)
	s.KeyMarketingGoals.LongTerm = orEmpty(s.KeyMarketingGoals.LongTerm)
	s.ContentPillars = orEmpty(s.ContentPillars)
	s.ContentIdeas = orEmpty(s.ContentIdeas)
	if s.RecommendedChannels == nil {
		s.RecommendedChannels = []StrategyChannel{}
	}
	if s.Timeline == nil {
		s.Timeline = []TimelinePhase{}
	}
	for i := range s.Timeline {
		s.Timeline[i].Activities = orEmpty(s.Timeline[i].Activities)
	}
	if s.BudgetRecommendation.Breakdown == nil {
		s.BudgetRecommendation.Breakdown = []BudgetCategory{}
	}
	if s.KeyMetrics == nil {
		s.KeyMetrics = []KeyMetric{}
	}
	return v.orNil()
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

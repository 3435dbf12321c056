package analysis

import "time"

// AudienceType enum
type AudienceType string

const (
	AudienceConsumers  AudienceType = "Consumers"
	AudienceBusiness   AudienceType = "Business"
	AudienceGovernment AudienceType = "Government"
)

// Difficulty enum
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Priority enum used by strategy channels
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// TargetAudience value object
type TargetAudience struct {
	Type     AudienceType `json:"type"`
	Segments []string     `json:"segments"`
}

// WebsiteAnalysis is the structured business analysis of one URL.
type WebsiteAnalysis struct {
	ProductOverview      string         `json:"productOverview"`
	CoreValueProposition string         `json:"coreValueProposition"`
	TargetAudience       TargetAudience `json:"targetAudience"`
	CurrentAwareness     string         `json:"currentAwareness"`
	Goal                 []string       `json:"goal"`
	Budget               string         `json:"budget"`
	Strengths            []string       `json:"strengths"`
	Constraints          []string       `json:"constraints"`
	PreferredChannels    []string       `json:"preferredChannels"`
	ToneAndPersonality   string         `json:"toneAndPersonality"`
}

// Record is a persisted analysis row, keyed by URL.
type Record struct {
	WebsiteURL string          `json:"websiteUrl"`
	Title      string          `json:"websiteTitle,omitempty"`
	Analysis   WebsiteAnalysis `json:"analysis"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// CampaignRecommendation is one suggested campaign for a URL.
type CampaignRecommendation struct {
	ID            string     `json:"id"`
	WebsiteURL    string     `json:"websiteUrl,omitempty"`
	Title         string     `json:"title"`
	Platform      string     `json:"platform"`
	Description   string     `json:"description"`
	Insights      []string   `json:"insights"`
	ROI           string     `json:"roi"`
	Difficulty    Difficulty `json:"difficulty"`
	Budget        string     `json:"budget"`
	ExceedsBudget bool       `json:"exceedsBudget,omitempty"`
	CreatedAt     time.Time  `json:"createdAt,omitempty"`
}

// MarketingStrategy is the larger plan derived from an analysis.
// All budget/ROI/percentage fields are opaque display strings.
type MarketingStrategy struct {
	CompanyOverview  string `json:"companyOverview"`
	ValueProposition string `json:"valueProposition"`
	TargetAudience   struct {
		Description string   `json:"description"`
		Segments    []string `json:"segments"`
	} `json:"targetAudience"`
	IndustryInsights    []string `json:"industryInsights"`
	StrategicObjectives []string `json:"strategicObjectives"`
	KeyMarketingGoals   struct {
		ShortTerm []string `json:"shortTerm"`
		LongTerm  []string `json:"longTerm"`
	} `json:"keyMarketingGoals"`
	Positioning          string               `json:"positioning"`
	RecommendedChannels  []StrategyChannel    `json:"recommendedChannels"`
	ContentPillars       []string             `json:"contentPillars"`
	ContentIdeas         []string             `json:"contentIdeas"`
	Timeline             []TimelinePhase      `json:"timeline"`
	BudgetRecommendation BudgetRecommendation `json:"budgetRecommendation"`
	KeyMetrics           []KeyMetric          `json:"keyMetrics"`
}

type StrategyChannel struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Priority     Priority `json:"priority"`
	EstimatedROI string   `json:"estimatedROI"`
}

type TimelinePhase struct {
	Phase      string   `json:"phase"`
	Duration   string   `json:"duration"`
	Activities []string `json:"activities"`
}

type BudgetRecommendation struct {
	TotalBudget string           `json:"totalBudget"`
	Breakdown   []BudgetCategory `json:"breakdown"`
}

type BudgetCategory struct {
	Category    string `json:"category"`
	Allocation  string `json:"allocation"`
	Description string `json:"description"`
}

type KeyMetric struct {
	Metric            string `json:"metric"`
	Target            string `json:"target"`
	MeasurementMethod string `json:"measurementMethod"`
}

// Page is the fetched and cleaned form of a website.
type Page struct {
	URL     string
	Title   string
	Excerpt string
}

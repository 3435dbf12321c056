package analysis

import (
	"context"
	"time"
)

// Repository port for website_analyses, one row per URL.
type Repository interface {
	GetByURL(ctx context.Context, url string) (*Record, error)
	Save(ctx context.Context, r *Record) error
	DeleteByURL(ctx context.Context, url string) error
}

// RecommendationRepository port for campaign_recommendations, many rows per URL.
type RecommendationRepository interface {
	ListByURL(ctx context.Context, url string) ([]CampaignRecommendation, error)
	// ReplaceForURL deletes every recommendation of url and inserts recs.
	ReplaceForURL(ctx context.Context, url string, recs []CampaignRecommendation) error
	DeleteByURL(ctx context.Context, url string) error
}

// StrategyCache holds generated strategies per URL. Get returns (nil, nil) on a miss.
type StrategyCache interface {
	Get(ctx context.Context, url string) (*MarketingStrategy, error)
	Put(ctx context.Context, url string, s *MarketingStrategy) error
	Delete(ctx context.Context, url string) error
}

// PageFetcher retrieves and cleans a page into a bounded excerpt.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*Page, error)
}

// ReportStore keeps rendered export reports and returns a link to them.
type ReportStore interface {
	PutReport(ctx context.Context, key string, html []byte, expiry time.Duration) (string, error)
}

// Mailer dispatches one pre-rendered HTML report.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

// ReportRenderer turns a stored analysis into the export HTML and its email subject.
type ReportRenderer interface {
	Render(rec *Record, recs []CampaignRecommendation) ([]byte, error)
	Subject(url string) string
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/bryanwahyu/adpilot/internal/domain/analysis"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Save inserts or updates the analysis of one URL
func (r *AnalysisRepository) Save(ctx context.Context, rec *analysis.Record) error {
	const q = `
INSERT INTO website_analyses
  (website_url, website_title, product_overview, core_value_proposition, target_audience_type,
   target_audience_segments, current_stage, goals, suggested_budget, strengths, constraints,
   preferred_channels, tone_and_personality, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
ON CONFLICT (website_url) DO UPDATE SET
  website_title=EXCLUDED.website_title,
  product_overview=EXCLUDED.product_overview,
  core_value_proposition=EXCLUDED.core_value_proposition,
  target_audience_type=EXCLUDED.target_audience_type,
  target_audience_segments=EXCLUDED.target_audience_segments,
  current_stage=EXCLUDED.current_stage,
  goals=EXCLUDED.goals,
  suggested_budget=EXCLUDED.suggested_budget,
  strengths=EXCLUDED.strengths,
  constraints=EXCLUDED.constraints,
  preferred_channels=EXCLUDED.preferred_channels,
  tone_and_personality=EXCLUDED.tone_and_personality,
  created_at=EXCLUDED.created_at;
`
	a := rec.Analysis
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, q,
		rec.WebsiteURL, rec.Title, a.ProductOverview, a.CoreValueProposition, string(a.TargetAudience.Type),
		pq.Array(nonNil(a.TargetAudience.Segments)), a.CurrentAwareness, pq.Array(nonNil(a.Goal)), a.Budget,
		pq.Array(nonNil(a.Strengths)), pq.Array(nonNil(a.Constraints)), pq.Array(nonNil(a.PreferredChannels)),
		a.ToneAndPersonality, createdAt,
	)
	return err
}

// GetByURL returns analysis.ErrNotFound when no row exists.
func (r *AnalysisRepository) GetByURL(ctx context.Context, url string) (*analysis.Record, error) {
	const q = `
SELECT website_url, website_title, product_overview, core_value_proposition, target_audience_type,
       target_audience_segments, current_stage, goals, suggested_budget, strengths, constraints,
       preferred_channels, tone_and_personality, created_at
FROM website_analyses
WHERE website_url=$1;`
	var (
		rec      analysis.Record
		audience string
	)
	a := &rec.Analysis
	err := r.db.QueryRowContext(ctx, q, url).Scan(
		&rec.WebsiteURL, &rec.Title, &a.ProductOverview, &a.CoreValueProposition, &audience,
		pq.Array(&a.TargetAudience.Segments), &a.CurrentAwareness, pq.Array(&a.Goal), &a.Budget,
		pq.Array(&a.Strengths), pq.Array(&a.Constraints), pq.Array(&a.PreferredChannels),
		&a.ToneAndPersonality, &rec.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, analysis.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	a.TargetAudience.Type = analysis.AudienceType(audience)
	a.TargetAudience.Segments = nonNil(a.TargetAudience.Segments)
	a.Goal = nonNil(a.Goal)
	a.Strengths = nonNil(a.Strengths)
	a.Constraints = nonNil(a.Constraints)
	a.PreferredChannels = nonNil(a.PreferredChannels)
	return &rec, nil
}

// DeleteByURL removes the analysis; recommendations cascade.
func (r *AnalysisRepository) DeleteByURL(ctx context.Context, url string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM website_analyses WHERE website_url=$1`, url)
	return err
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

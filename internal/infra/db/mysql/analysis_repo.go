package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

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
	const q = "INSERT INTO website_analyses\n" +
		"  (website_url, website_title, product_overview, core_value_proposition, target_audience_type,\n" +
		"   target_audience_segments, current_stage, goals, suggested_budget, strengths, `constraints`,\n" +
		"   preferred_channels, tone_and_personality, created_at)\n" +
		"VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)\n" +
		"ON DUPLICATE KEY UPDATE\n" +
		"  website_title=VALUES(website_title), product_overview=VALUES(product_overview),\n" +
		"  core_value_proposition=VALUES(core_value_proposition), target_audience_type=VALUES(target_audience_type),\n" +
		"  target_audience_segments=VALUES(target_audience_segments), current_stage=VALUES(current_stage),\n" +
		"  goals=VALUES(goals), suggested_budget=VALUES(suggested_budget), strengths=VALUES(strengths),\n" +
		"  `constraints`=VALUES(`constraints`), preferred_channels=VALUES(preferred_channels),\n" +
		"  tone_and_personality=VALUES(tone_and_personality), created_at=VALUES(created_at)"

	a := rec.Analysis
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, q,
		rec.WebsiteURL, rec.Title, a.ProductOverview, a.CoreValueProposition, string(a.TargetAudience.Type),
		jsonList(a.TargetAudience.Segments), a.CurrentAwareness, jsonList(a.Goal), a.Budget,
		jsonList(a.Strengths), jsonList(a.Constraints), jsonList(a.PreferredChannels),
		a.ToneAndPersonality, createdAt.UTC(),
	)
	return err
}

// GetByURL returns analysis.ErrNotFound when no row exists.
func (r *AnalysisRepository) GetByURL(ctx context.Context, url string) (*analysis.Record, error) {
	const q = "SELECT website_url, website_title, product_overview, core_value_proposition, target_audience_type,\n" +
		"  target_audience_segments, current_stage, goals, suggested_budget, strengths, `constraints`,\n" +
		"  preferred_channels, tone_and_personality, created_at\n" +
		"FROM website_analyses WHERE website_url=?"

	var (
		rec      analysis.Record
		audience string
	)
	var segments, goals, strengths, constraints, channels []byte
	a := &rec.Analysis
	err := r.db.QueryRowContext(ctx, q, url).Scan(
		&rec.WebsiteURL, &rec.Title, &a.ProductOverview, &a.CoreValueProposition, &audience,
		&segments, &a.CurrentAwareness, &goals, &a.Budget, &strengths, &constraints,
		&channels, &a.ToneAndPersonality, &rec.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, analysis.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	a.TargetAudience.Type = analysis.AudienceType(audience)
	a.TargetAudience.Segments = parseList(segments)
	a.Goal = parseList(goals)
	a.Strengths = parseList(strengths)
	a.Constraints = parseList(constraints)
	a.PreferredChannels = parseList(channels)
	return &rec, nil
}

// DeleteByURL removes the analysis; recommendations cascade.
func (r *AnalysisRepository) DeleteByURL(ctx context.Context, url string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM website_analyses WHERE website_url=?`, url)
	return err
}

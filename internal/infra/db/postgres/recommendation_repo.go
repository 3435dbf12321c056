package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/bryanwahyu/adpilot/internal/domain/analysis"
)

type RecommendationRepository struct {
	db *sql.DB
}

func NewRecommendationRepository(db *sql.DB) *RecommendationRepository {
	return &RecommendationRepository{db: db}
}

// ListByURL returns recommendations in the order they were generated
func (r *RecommendationRepository) ListByURL(ctx context.Context, url string) ([]analysis.CampaignRecommendation, error) {
	const q = `
SELECT id, website_url, title, platform, description, insights, roi, difficulty, budget, exceeds_budget, created_at
FROM campaign_recommendations
WHERE website_url=$1
ORDER BY position ASC, created_at ASC;`
	rows, err := r.db.QueryContext(ctx, q, url)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []analysis.CampaignRecommendation{}
	for rows.Next() {
		var (
			c          analysis.CampaignRecommendation
			difficulty string
		)
		if err := rows.Scan(&c.ID, &c.WebsiteURL, &c.Title, &c.Platform, &c.Description, pq.Array(&c.Insights),
			&c.ROI, &difficulty, &c.Budget, &c.ExceedsBudget, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Difficulty = analysis.Difficulty(difficulty)
		c.Insights = nonNil(c.Insights)
		out = append(out, c)
	}
	return out, rows.Err()
}

// ReplaceForURL swaps the full recommendation set of url in one transaction
func (r *RecommendationRepository) ReplaceForURL(ctx context.Context, url string, recs []analysis.CampaignRecommendation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM campaign_recommendations WHERE website_url=$1`, url); err != nil {
		return err
	}

	const q = `
INSERT INTO campaign_recommendations
  (id, website_url, position, title, platform, description, insights, roi, difficulty, budget, exceeds_budget, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12);`
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now()
	for i, c := range recs {
		createdAt := c.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		difficulty := string(c.Difficulty)
		if difficulty == "" {
			difficulty = string(analysis.DifficultyMedium)
		}
		if _, err := stmt.ExecContext(ctx, c.ID, url, i, c.Title, c.Platform, c.Description, pq.Array(nonNil(c.Insights)),
			c.ROI, difficulty, c.Budget, c.ExceedsBudget, createdAt); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *RecommendationRepository) DeleteByURL(ctx context.Context, url string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM campaign_recommendations WHERE website_url=$1`, url)
	return err
}

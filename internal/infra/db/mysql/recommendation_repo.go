package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/bryanwahyu/adpilot/internal/domain/analysis"
)

type RecommendationRepository struct {
	db *sql.DB
}

func NewRecommendationRepository(db *sql.DB) *RecommendationRepository {
	return &RecommendationRepository{db: db}
}

func (r *RecommendationRepository) ListByURL(ctx context.Context, url string) ([]analysis.CampaignRecommendation, error) {
	const q = `
SELECT id, website_url, title, platform, description, insights, roi, difficulty, budget, exceeds_budget, created_at
FROM campaign_recommendations
WHERE website_url=?
ORDER BY position ASC, created_at ASC`
	rows, err := r.db.QueryContext(ctx, q, url)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []analysis.CampaignRecommendation{}
	for rows.Next() {
		var (
			c          analysis.CampaignRecommendation
			insights   []byte
			difficulty string
		)
		if err := rows.Scan(&c.ID, &c.WebsiteURL, &c.Title, &c.Platform, &c.Description, &insights,
			&c.ROI, &difficulty, &c.Budget, &c.ExceedsBudget, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Difficulty = analysis.Difficulty(difficulty)
		c.Insights = parseList(insights)
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

	if _, err := tx.ExecContext(ctx, `DELETE FROM campaign_recommendations WHERE website_url=?`, url); err != nil {
		return err
	}

	const q = `
INSERT INTO campaign_recommendations
  (id, website_url, position, title, platform, description, insights, roi, difficulty, budget, exceeds_budget, created_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i, c := range recs {
		createdAt := c.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		difficulty := string(c.Difficulty)
		if difficulty == "" {
			difficulty = string(analysis.DifficultyMedium)
		}
		if _, err := stmt.ExecContext(ctx, c.ID, url, i, c.Title, c.Platform, c.Description, jsonList(c.Insights),
			c.ROI, difficulty, c.Budget, c.ExceedsBudget, createdAt.UTC()); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *RecommendationRepository) DeleteByURL(ctx context.Context, url string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM campaign_recommendations WHERE website_url=?`, url)
	return err
}

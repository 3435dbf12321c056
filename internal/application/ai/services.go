package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	domai "github.com/bryanwahyu/adpilot/internal/domain/ai"
	"github.com/bryanwahyu/adpilot/internal/domain/analysis"
	"github.com/bryanwahyu/adpilot/internal/infra/ai/prompt"
)

// Service turns page excerpts and analyses into validated model output.
type Service struct {
	client  domai.Client
	log     logrus.FieldLogger
	limiter *rate.Limiter
}

func NewService(client domai.Client, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{client: client, log: log}
}

// WithRateLimit spaces model calls to rpm per minute. rpm <= 0 leaves calls unthrottled.
func (s *Service) WithRateLimit(rpm, burst int) *Service {
	if rpm <= 0 {
		s.limiter = nil
		return s
	}
	if burst < 1 {
		burst = 1
	}
	s.limiter = rate.NewLimiter(rate.Limit(float64(rpm)/60.0), burst)
	return s
}

// AnalyzeWebsite produces a validated WebsiteAnalysis from a cleaned excerpt.
func (s *Service) AnalyzeWebsite(ctx context.Context, excerpt string) (*analysis.WebsiteAnalysis, error) {
	var out analysis.WebsiteAnalysis
	if err := s.generate(ctx, "analysis", prompt.AnalysisSystemPrompt(), prompt.AnalysisUserPrompt(excerpt), &out); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}

// CampaignRequest selects between the top-three prompt and the all-types prompt.
type CampaignRequest struct {
	All bool
	// Budget is the ceiling in dollars for All requests. Zero derives it from
	// the analysis budget.
	Budget int
}

// RecommendCampaigns asks for campaigns, validates them, fills missing ids and
// flags items whose budget exceeds the ceiling. Duplicate ids are replaced
// so recommendations stay unique per URL.
func (s *Service) RecommendCampaigns(ctx context.Context, a *analysis.WebsiteAnalysis, req CampaignRequest) ([]analysis.CampaignRecommendation, error) {
	body, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode analysis: %w", err)
	}

	ceiling := analysis.ClampCeiling(req.Budget)
	if ceiling == 0 {
		ceiling = analysis.ClampCeiling(int(analysis.BudgetUpperBound(a.Budget)))
	}

	system := prompt.TopCampaignsSystemPrompt()
	if req.All {
		system = prompt.AllCampaignsSystemPrompt(ceiling)
	}

	var recs []analysis.CampaignRecommendation
	if err := s.generate(ctx, "campaigns", system, prompt.CampaignsUserPrompt(string(body)), &recs); err != nil {
		return nil, err
	}
	if !req.All && len(recs) > prompt.TopCampaignCount {
		recs = recs[:prompt.TopCampaignCount]
	}
	if err := analysis.ValidateRecommendations(recs); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(recs))
	for i := range recs {
		id := strings.TrimSpace(recs[i].ID)
		if id == "" || seen[id] {
			id = uuid.NewString()
		}
		seen[id] = true
		recs[i].ID = id
	}
	if n := analysis.FlagOverBudget(recs, ceiling); n > 0 {
		s.log.WithFields(logrus.Fields{"ceiling": ceiling, "flagged": n}).Warn("campaign budgets exceed ceiling")
	}
	return recs, nil
}

// BuildStrategy produces a MarketingStrategy from an analysis.
func (s *Service) BuildStrategy(ctx context.Context, a *analysis.WebsiteAnalysis) (*analysis.MarketingStrategy, error) {
	body, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode analysis: %w", err)
	}
	var out analysis.MarketingStrategy
	if err := s.generate(ctx, "strategy", prompt.StrategySystemPrompt(), prompt.StrategyUserPrompt(string(body)), &out); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) generate(ctx context.Context, kind, system, user string, v any) error {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %v", domai.ErrModelInvocation, err)
		}
	}
	raw, err := s.client.Generate(ctx, system, user)
	if err != nil {
		return err
	}
	if err := ParseJSON(raw, v); err != nil {
		s.log.WithField("kind", kind).WithField("raw", raw).Error("unparseable model response")
		return err
	}
	return nil
}

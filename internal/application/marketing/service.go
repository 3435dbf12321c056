package marketing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bryanwahyu/adpilot/internal/application"
	appai "github.com/bryanwahyu/adpilot/internal/application/ai"
	"github.com/bryanwahyu/adpilot/internal/domain/analysis"
)

var (
	// ErrEmailDisabled is returned when an export asks for email but no mailer is configured.
	ErrEmailDisabled = errors.New("email delivery is not configured")
	// ErrEmailDelivery wraps a failed send.
	ErrEmailDelivery = errors.New("email delivery failed")
)

// StageObserver records how long each pipeline stage took.
type StageObserver interface {
	ObserveStage(stage string, took time.Duration, err error)
}

// Service orchestrates the website analysis pipeline. Each call runs its
// stages in sequence; the repositories are the only shared state.
type Service struct {
	Analyses        analysis.Repository
	Recommendations analysis.RecommendationRepository
	Fetcher         analysis.PageFetcher
	Generator       *appai.Service

	// optional collaborators
	Strategies   analysis.StrategyCache
	Reports      analysis.ReportStore
	ReportExpiry time.Duration
	Renderer     analysis.ReportRenderer
	Mailer       analysis.Mailer
	Observer     StageObserver

	Clock application.Clock
	Log   logrus.FieldLogger
}

//
// ==== USE CASES ====
//

type AnalyzeCommand struct {
	URL   string
	Force bool
}

type AnalyzeResult struct {
	URL             string                            `json:"url"`
	Title           string                            `json:"websiteTitle,omitempty"`
	Analysis        analysis.WebsiteAnalysis          `json:"analysis"`
	Recommendations []analysis.CampaignRecommendation `json:"recommendations"`
	Cached          bool                              `json:"cached"`
	CreatedAt       time.Time                         `json:"createdAt"`
	Warnings        []string                          `json:"warnings,omitempty"`
}

// Analyze returns the stored analysis of a URL when one exists and otherwise
// fetches the page, asks the model for an analysis and top campaigns, and
// stores both. Force discards stored results first and
// stops when they cannot be removed. Failed writes become
// warnings; the fresh result is still returned.
func (s *Service) Analyze(ctx context.Context, cmd AnalyzeCommand) (AnalyzeResult, error) {
	log := s.logger().WithField("url", cmd.URL)
	var warnings []string

	if cmd.Force {
		// stored rows are replaced, never updated in place
		if err := s.purge(ctx, cmd.URL); err != nil {
			log.WithError(err).Error("force re-analyze: purge failed")
			return AnalyzeResult{}, err
		}
	} else {
		res, err := s.Get(ctx, cmd.URL)
		if err == nil {
			log.Info("serving stored analysis")
			return res, nil
		}
		if !errors.Is(err, analysis.ErrNotFound) {
			return AnalyzeResult{}, err
		}
	}

	var page *analysis.Page
	err := s.stage(ctx, "fetch", cmd.URL, func(ctx context.Context) (err error) {
		page, err = s.Fetcher.Fetch(ctx, cmd.URL)
		return err
	})
	if err != nil {
		return AnalyzeResult{}, err
	}

	var wa *analysis.WebsiteAnalysis
	err = s.stage(ctx, "analyze", cmd.URL, func(ctx context.Context) (err error) {
		wa, err = s.Generator.AnalyzeWebsite(ctx, page.Excerpt)
		return err
	})
	if err != nil {
		return AnalyzeResult{}, err
	}

	rec := &analysis.Record{WebsiteURL: cmd.URL, Title: page.Title, Analysis: *wa, CreatedAt: s.now()}
	saved := true
	if err := s.Analyses.Save(ctx, rec); err != nil {
		saved = false
		log.WithError(err).Error("save analysis failed")
		warnings = append(warnings, persistenceWarning("analysis", err))
	}

	res := AnalyzeResult{
		URL:             cmd.URL,
		Title:           rec.Title,
		Analysis:        rec.Analysis,
		Recommendations: []analysis.CampaignRecommendation{},
		CreatedAt:       rec.CreatedAt,
	}

	var recs []analysis.CampaignRecommendation
	err = s.stage(ctx, "recommend", cmd.URL, func(ctx context.Context) (err error) {
		recs, err = s.Generator.RecommendCampaigns(ctx, wa, appai.CampaignRequest{})
		return err
	})
	if err != nil {
		// the analysis stands on its own; recommendations can be regenerated later
		log.WithError(err).Error("campaign recommendations failed")
		res.Warnings = append(warnings, "campaign recommendations unavailable: "+err.Error())
		return res, nil
	}

	s.stamp(cmd.URL, recs)
	res.Recommendations = recs
	if saved {
		if err := s.Recommendations.ReplaceForURL(ctx, cmd.URL, recs); err != nil {
			log.WithError(err).Error("save recommendations failed")
			warnings = append(warnings, persistenceWarning("recommendations", err))
		}
	} else {
		warnings = append(warnings, "recommendations were not saved")
	}
	res.Warnings = warnings
	return res, nil
}

// Get returns the stored analysis and recommendations of a URL.
func (s *Service) Get(ctx context.Context, url string) (AnalyzeResult, error) {
	rec, err := s.Analyses.GetByURL(ctx, url)
	if err != nil {
		if errors.Is(err, analysis.ErrNotFound) {
			return AnalyzeResult{}, err
		}
		return AnalyzeResult{}, fmt.Errorf("load analysis: %w", err)
	}
	recs, err := s.Recommendations.ListByURL(ctx, url)
	if err != nil {
		return AnalyzeResult{}, fmt.Errorf("load recommendations: %w", err)
	}
	if recs == nil {
		recs = []analysis.CampaignRecommendation{}
	}
	return AnalyzeResult{
		URL:             rec.WebsiteURL,
		Title:           rec.Title,
		Analysis:        rec.Analysis,
		Recommendations: recs,
		Cached:          true,
		CreatedAt:       rec.CreatedAt,
	}, nil
}

// Purge removes everything stored for a URL.
func (s *Service) Purge(ctx context.Context, url string) error {
	if err := s.purge(ctx, url); err != nil {
		return err
	}
	s.logger().WithField("url", url).Info("purged stored results")
	return nil
}

func (s *Service) purge(ctx context.Context, url string) error {
	if err := s.Recommendations.DeleteByURL(ctx, url); err != nil {
		return fmt.Errorf("%w: delete recommendations: %v", analysis.ErrPersistence, err)
	}
	if err := s.Analyses.DeleteByURL(ctx, url); err != nil {
		return fmt.Errorf("%w: delete analysis: %v", analysis.ErrPersistence, err)
	}
	if s.Strategies != nil {
		if err := s.Strategies.Delete(ctx, url); err != nil {
			return fmt.Errorf("%w: delete strategy: %v", analysis.ErrPersistence, err)
		}
	}
	return nil
}

// ListCampaigns returns the stored recommendations of a URL.
func (s *Service) ListCampaigns(ctx context.Context, url string) ([]analysis.CampaignRecommendation, error) {
	recs, err := s.Recommendations.ListByURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("load recommendations: %w", err)
	}
	if recs == nil {
		recs = []analysis.CampaignRecommendation{}
	}
	return recs, nil
}

type GenerateCampaignsCommand struct {
	URL string
	// Budget in dollars, clamped to [0, analysis.MaxBudgetCeiling]. Zero uses
	// the analysis' suggested budget.
	Budget int
}

type CampaignsResult struct {
	URL             string                            `json:"url"`
	Budget          int                               `json:"budget"`
	Recommendations []analysis.CampaignRecommendation `json:"recommendations"`
	Warnings        []string                          `json:"warnings,omitempty"`
}

// GenerateCampaigns asks for every campaign type within a budget and replaces
// the stored recommendations of the URL with the result.
func (s *Service) GenerateCampaigns(ctx context.Context, cmd GenerateCampaignsCommand) (CampaignsResult, error) {
	rec, err := s.loadAnalysis(ctx, cmd.URL)
	if err != nil {
		return CampaignsResult{}, err
	}
	budget := analysis.ClampCeiling(cmd.Budget)
	if budget == 0 {
		budget = analysis.ClampCeiling(int(analysis.BudgetUpperBound(rec.Analysis.Budget)))
	}

	var recs []analysis.CampaignRecommendation
	err = s.stage(ctx, "recommend_all", cmd.URL, func(ctx context.Context) (err error) {
		recs, err = s.Generator.RecommendCampaigns(ctx, &rec.Analysis, appai.CampaignRequest{All: true, Budget: budget})
		return err
	})
	if err != nil {
		return CampaignsResult{}, err
	}

	s.stamp(cmd.URL, recs)
	res := CampaignsResult{URL: cmd.URL, Budget: budget, Recommendations: recs}
	if err := s.Recommendations.ReplaceForURL(ctx, cmd.URL, recs); err != nil {
		s.logger().WithField("url", cmd.URL).WithError(err).Error("save recommendations failed")
		res.Warnings = append(res.Warnings, persistenceWarning("recommendations", err))
	}
	return res, nil
}

type StrategyCommand struct {
	URL   string
	Force bool
}

type StrategyResult struct {
	URL      string                      `json:"url"`
	Strategy *analysis.MarketingStrategy `json:"strategy"`
	Cached   bool                        `json:"cached"`
	Warnings []string                    `json:"warnings,omitempty"`
}

// Strategy returns the cached marketing strategy of a URL or builds one from
// its stored analysis.
func (s *Service) Strategy(ctx context.Context, cmd StrategyCommand) (StrategyResult, error) {
	log := s.logger().WithField("url", cmd.URL)
	rec, err := s.loadAnalysis(ctx, cmd.URL)
	if err != nil {
		return StrategyResult{}, err
	}

	if s.Strategies != nil && !cmd.Force {
		cached, err := s.Strategies.Get(ctx, cmd.URL)
		if err != nil {
			log.WithError(err).Warn("strategy cache read failed")
		}
		if cached != nil {
			return StrategyResult{URL: cmd.URL, Strategy: cached, Cached: true}, nil
		}
	}

	var strategy *analysis.MarketingStrategy
	err = s.stage(ctx, "strategy", cmd.URL, func(ctx context.Context) (err error) {
		strategy, err = s.Generator.BuildStrategy(ctx, &rec.Analysis)
		return err
	})
	if err != nil {
		return StrategyResult{}, err
	}

	res := StrategyResult{URL: cmd.URL, Strategy: strategy}
	if s.Strategies != nil {
		if err := s.Strategies.Put(ctx, cmd.URL, strategy); err != nil {
			log.WithError(err).Error("cache strategy failed")
			res.Warnings = append(res.Warnings, persistenceWarning("strategy", err))
		}
	}
	return res, nil
}

type ExportCommand struct {
	URL   string
	Email string
}

type ExportResult struct {
	URL       string   `json:"url"`
	ReportURL string   `json:"reportUrl,omitempty"`
	Emailed   bool     `json:"emailed"`
	Warnings  []string `json:"warnings,omitempty"`
}

// Export renders the stored analysis as an HTML report, keeps a copy in the
// report store and emails it when an address is given.
func (s *Service) Export(ctx context.Context, cmd ExportCommand) (ExportResult, error) {
	if cmd.Email != "" && s.Mailer == nil {
		return ExportResult{}, ErrEmailDisabled
	}
	if s.Renderer == nil {
		return ExportResult{}, errors.New("report renderer is not configured")
	}
	log := s.logger().WithField("url", cmd.URL)

	stored, err := s.Get(ctx, cmd.URL)
	if err != nil {
		return ExportResult{}, err
	}
	rec := &analysis.Record{WebsiteURL: stored.URL, Title: stored.Title, Analysis: stored.Analysis, CreatedAt: stored.CreatedAt}
	html, err := s.Renderer.Render(rec, stored.Recommendations)
	if err != nil {
		return ExportResult{}, fmt.Errorf("render report: %w", err)
	}

	res := ExportResult{URL: cmd.URL}
	if s.Reports != nil {
		key := fmt.Sprintf("reports/%s/%s.html", s.now().UTC().Format("2006/01/02"), uuid.NewString())
		link, err := s.Reports.PutReport(ctx, key, html, s.ReportExpiry)
		if err != nil {
			log.WithError(err).Error("store report failed")
			res.Warnings = append(res.Warnings, persistenceWarning("report", err))
		} else {
			res.ReportURL = link
		}
	}

	if cmd.Email != "" {
		err := s.stage(ctx, "email", cmd.URL, func(ctx context.Context) error {
			return s.Mailer.Send(ctx, cmd.Email, s.Renderer.Subject(cmd.URL), string(html))
		})
		if err != nil {
			return ExportResult{}, fmt.Errorf("%w: %v", ErrEmailDelivery, err)
		}
		res.Emailed = true
	}
	return res, nil
}

//
// ==== helpers ====
//

func (s *Service) loadAnalysis(ctx context.Context, url string) (*analysis.Record, error) {
	rec, err := s.Analyses.GetByURL(ctx, url)
	if err != nil {
		if errors.Is(err, analysis.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load analysis: %w", err)
	}
	return rec, nil
}

func (s *Service) stage(ctx context.Context, name, url string, fn func(context.Context) error) error {
	start := s.now()
	err := fn(ctx)
	took := s.now().Sub(start)
	if s.Observer != nil {
		s.Observer.ObserveStage(name, took, err)
	}
	entry := s.logger().WithFields(logrus.Fields{"url": url, "stage": name, "duration_ms": took.Milliseconds()})
	if err != nil {
		entry.WithError(err).Warn("stage failed")
	} else {
		entry.Debug("stage done")
	}
	return err
}

func (s *Service) stamp(url string, recs []analysis.CampaignRecommendation) {
	now := s.now()
	for i := range recs {
		recs[i].WebsiteURL = url
		if recs[i].CreatedAt.IsZero() {
			recs[i].CreatedAt = now
		}
	}
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock.Now()
}

func (s *Service) logger() logrus.FieldLogger {
	if s.Log == nil {
		return logrus.StandardLogger()
	}
	return s.Log
}

func persistenceWarning(what string, err error) string {
	return fmt.Sprintf("%s was not saved: %v", what, fmt.Errorf("%w: %v", analysis.ErrPersistence, err))
}

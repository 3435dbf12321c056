package marketing

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	appai "github.com/bryanwahyu/adpilot/internal/application/ai"
	"github.com/bryanwahyu/adpilot/internal/domain/analysis"
)

type memAnalyses struct {
	mu      sync.Mutex
	rows    map[string]analysis.Record
	saveErr   error
	getErr    error
	deleteErr error
}

func newMemAnalyses() *memAnalyses { return &memAnalyses{rows: map[string]analysis.Record{}} }

func (m *memAnalyses) GetByURL(_ context.Context, url string) (*analysis.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	r, ok := m.rows[url]
	if !ok {
		return nil, analysis.ErrNotFound
	}
	return &r, nil
}

func (m *memAnalyses) Save(_ context.Context, r *analysis.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.rows[r.WebsiteURL] = *r
	return nil
}

func (m *memAnalyses) DeleteByURL(_ context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.rows, url)
	return nil
}

type memRecs struct {
	mu   sync.Mutex
	rows map[string][]analysis.CampaignRecommendation
}

func newMemRecs() *memRecs { return &memRecs{rows: map[string][]analysis.CampaignRecommendation{}} }

func (m *memRecs) ListByURL(_ context.Context, url string) ([]analysis.CampaignRecommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]analysis.CampaignRecommendation(nil), m.rows[url]...), nil
}

func (m *memRecs) ReplaceForURL(_ context.Context, url string, recs []analysis.CampaignRecommendation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[url] = append([]analysis.CampaignRecommendation(nil), recs...)
	return nil
}

func (m *memRecs) DeleteByURL(_ context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, url)
	return nil
}

type memStrategies struct {
	rows map[string]*analysis.MarketingStrategy
}

func (m *memStrategies) Get(_ context.Context, url string) (*analysis.MarketingStrategy, error) {
	return m.rows[url], nil
}

func (m *memStrategies) Put(_ context.Context, url string, s *analysis.MarketingStrategy) error {
	m.rows[url] = s
	return nil
}

func (m *memStrategies) Delete(_ context.Context, url string) error {
	delete(m.rows, url)
	return nil
}

type fakeFetcher struct {
	html  string
	calls int
	err   error
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (*analysis.Page, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &analysis.Page{URL: url, Title: "Bottle Co", Excerpt: f.html}, nil
}

// scriptedModel answers by prompt kind.
type scriptedModel struct {
	analysis  string
	campaigns string
	strategy  string
	calls     int
	prompts   []string
	failOn    string
}

func (m *scriptedModel) Generate(_ context.Context, system, user string) (string, error) {
	m.calls++
	m.prompts = append(m.prompts, system)
	kind := "analysis"
	switch {
	case strings.Contains(system, "campaign"):
		kind = "campaigns"
	case strings.Contains(system, "strategist"):
		kind = "strategy"
	}
	if kind == m.failOn {
		return "", errors.New("model unavailable")
	}
	switch kind {
	case "campaigns":
		return m.campaigns, nil
	case "strategy":
		return m.strategy, nil
	}
	return m.analysis, nil
}

type memReports struct {
	keys []string
}

func (m *memReports) PutReport(_ context.Context, key string, _ []byte, _ time.Duration) (string, error) {
	m.keys = append(m.keys, key)
	return "https://files.example/" + key, nil
}

type fakeMailer struct {
	to, subject, html string
}

func (m *fakeMailer) Send(_ context.Context, to, subject, html string) error {
	m.to, m.subject, m.html = to, subject, html
	return nil
}

type fakeRenderer struct{}

func (fakeRenderer) Render(rec *analysis.Record, recs []analysis.CampaignRecommendation) ([]byte, error) {
	return []byte("<h1>" + rec.WebsiteURL + "</h1>"), nil
}

func (fakeRenderer) Subject(url string) string { return "Website Analysis Report for " + url }

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

const (
	bottleHTML = "We sell eco-friendly water bottles to outdoor enthusiasts worldwide with a focus on sustainability and durability testing exceeding industry standards."

	bottleAnalysisJSON = `{"productOverview":"Eco-friendly water bottles for outdoor enthusiasts.","coreValueProposition":"Durable bottles that outlast industry standards.","targetAudience":{"type":"Consumers","segments":["Hikers","Campers"]},"currentAwareness":"Revenue generating","goal":["Awareness"],"budget":"$1,000-2,000","strengths":["Durability"],"constraints":["Competition"],"preferredChannels":["Instagram"],"toneAndPersonality":"Adventurous"}`

	topCampaignsJSON = `[{"title":"Social & Display Ads","platform":"Instagram","description":"d","insights":["a"],"roi":"3x","difficulty":"Medium","budget":"$500-1000"},{"title":"Content Marketing","platform":"Blog","description":"d","insights":["b"],"roi":"2x","difficulty":"Easy","budget":"$300"},{"title":"Offline Events","platform":"Trail fairs","description":"d","insights":["c"],"roi":"1.5x","difficulty":"Hard","budget":"$2,500"}]`

	strategyJSON = `{"companyOverview":"Bottle Co makes durable bottles.","valueProposition":"Outlasts the rest."}`
)

type harness struct {
	svc        *Service
	analyses   *memAnalyses
	recs       *memRecs
	strategies *memStrategies
	fetcher    *fakeFetcher
	model      *scriptedModel
	reports    *memReports
	mailer     *fakeMailer
}

func newHarness() *harness {
	log := logrus.New()
	log.SetOutput(io.Discard)
	h := &harness{
		analyses:   newMemAnalyses(),
		recs:       newMemRecs(),
		strategies: &memStrategies{rows: map[string]*analysis.MarketingStrategy{}},
		fetcher:    &fakeFetcher{html: bottleHTML},
		model:      &scriptedModel{analysis: bottleAnalysisJSON, campaigns: topCampaignsJSON, strategy: strategyJSON},
		reports:    &memReports{},
		mailer:     &fakeMailer{},
	}
	h.svc = &Service{
		Analyses:        h.analyses,
		Recommendations: h.recs,
		Fetcher:         h.fetcher,
		Generator:       appai.NewService(h.model, log),
		Strategies:      h.strategies,
		Reports:         h.reports,
		Renderer:        fakeRenderer{},
		Mailer:          h.mailer,
		Clock:           fixedClock{t: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)},
		Log:             log,
	}
	return h
}

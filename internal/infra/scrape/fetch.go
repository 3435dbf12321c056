package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/bryanwahyu/adpilot/internal/domain/analysis"
)

const (
	DefaultProxyBase = "https://api.codetabs.com/v1/proxy"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	maxBody = 5 << 20
)

// Fetcher retrieves pages through a pass-through proxy. It does not retry.
type Fetcher struct {
	client    *http.Client
	proxyBase string
	userAgent string
	log       logrus.FieldLogger
}

type Options struct {
	ProxyBase string
	UserAgent string
	Timeout   time.Duration
	Client    *http.Client
}

func NewFetcher(opts Options, log logrus.FieldLogger) *Fetcher {
	if opts.ProxyBase == "" {
		opts.ProxyBase = DefaultProxyBase
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Fetcher{client: client, proxyBase: opts.ProxyBase, userAgent: opts.UserAgent, log: log}
}

// Fetch downloads target via the proxy and returns its title and cleaned excerpt.
func (f *Fetcher) Fetch(ctx context.Context, target string) (*analysis.Page, error) {
	u, err := url.Parse(f.proxyBase)
	if err != nil {
		return nil, fmt.Errorf("proxy base: %w", err)
	}
	q := u.Query()
	q.Set("quest", target)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &analysis.FetchError{Err: err}
	}
	req.Header.Set("Accept", "text/html")
	req.Header.Set("User-Agent", f.userAgent)

	log := f.log.WithField("url", target)
	resp, err := f.client.Do(req)
	if err != nil {
		log.WithError(err).Error("fetch failed")
		return nil, &analysis.FetchError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, &analysis.FetchError{StatusCode: resp.StatusCode, Status: http.StatusText(resp.StatusCode), Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.WithFields(logrus.Fields{"status": resp.StatusCode, "body": truncate(string(body), 512)}).Error("fetch returned non-2xx")
		return nil, &analysis.FetchError{StatusCode: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
	}

	html := string(body)
	excerpt, err := Extract(html)
	if err != nil {
		return nil, err
	}
	log.WithField("length", len(excerpt)).Debug("page cleaned")
	return &analysis.Page{URL: target, Title: Title(html), Excerpt: excerpt}, nil
}

// Title returns the trimmed contents of the first <title> element, if any.
func Title(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

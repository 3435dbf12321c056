package scrape

import (
	"regexp"
	"strings"

	"github.com/bryanwahyu/adpilot/internal/domain/analysis"
)

const (
	// MaxExcerpt is the longest excerpt handed to the model.
	MaxExcerpt = 1000
	// MinExcerpt is the shortest excerpt worth analysing.
	MinExcerpt = 100
	// minLine drops navigation and menu fragments.
	minLine = 20
)

var (
	scriptRx  = regexp.MustCompile(`(?is)<script\b.*?</script\s*>`)
	styleRx   = regexp.MustCompile(`(?is)<style\b.*?</style\s*>`)
	commentRx = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockRx   = regexp.MustCompile(`(?i)</?(?:p|div|br|li|ul|ol|h[1-6]|tr|table|section|article|header|footer|nav|main|aside|blockquote|pre|form|title)\b[^>]*>`)
	tagRx     = regexp.MustCompile(`<[^>]*>`)
	spaceRx   = regexp.MustCompile(`[^\S\n]+`)
	newlineRx = regexp.MustCompile(`\s*\n\s*`)
	uiWordsRx = regexp.MustCompile(`(?i)(menu|navigation|header|footer|sidebar|button|link|search|login|sign up|sign in|register|subscribe|newsletter|cookie|privacy|terms|copyright|all rights reserved)`)
	urlRx     = regexp.MustCompile(`https?://\S+`)
	emailRx   = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	specialRx = regexp.MustCompile(`[^\w\s.,!?-]`)
	punctRx   = []struct {
		rx   *regexp.Regexp
		repl string
	}{
		{regexp.MustCompile(`\.+`), "."},
		{regexp.MustCompile(`,+`), ","},
		{regexp.MustCompile(`-+`), "-"},
		{regexp.MustCompile(`\?+`), "?"},
		{regexp.MustCompile(`!+`), "!"},
	}
)

// Clean applies the text cleanup pipeline without the length check. Block
// level tags become line breaks so that short-line filtering and line
// deduplication work on page structure.
func Clean(html string) string {
	s := scriptRx.ReplaceAllString(html, "")
	s = styleRx.ReplaceAllString(s, "")
	s = commentRx.ReplaceAllString(s, "")
	s = blockRx.ReplaceAllString(s, "\n")
	s = tagRx.ReplaceAllString(s, " ")
	s = collapse(s)
	s = uiWordsRx.ReplaceAllString(s, "")
	s = urlRx.ReplaceAllString(s, "")
	s = emailRx.ReplaceAllString(s, "")
	s = specialRx.ReplaceAllString(s, " ")
	s = collapse(s)
	for _, p := range punctRx {
		s = p.rx.ReplaceAllString(s, p.repl)
	}
	s = strings.TrimSpace(s)

	seen := make(map[string]struct{})
	var kept []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if len(line) <= minLine {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		kept = append(kept, line)
	}
	s = strings.Join(kept, "\n")

	if len(s) > MaxExcerpt {
		s = s[:MaxExcerpt]
	}
	return s
}

// Extract returns the cleaned excerpt or ErrExtractionTooShort when the page
// yields too little text, which usually means it blocks access or renders
// client side.
func Extract(html string) (string, error) {
	s := Clean(html)
	if len(s) < MinExcerpt {
		return "", analysis.ErrExtractionTooShort
	}
	return s, nil
}

func collapse(s string) string {
	s = spaceRx.ReplaceAllString(s, " ")
	return newlineRx.ReplaceAllString(s, "\n")
}

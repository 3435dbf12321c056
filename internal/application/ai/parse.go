package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	domai "github.com/bryanwahyu/adpilot/internal/domain/ai"
)

var fencedJSON = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// ExtractJSON locates the JSON payload inside freeform model output: a ```json
// fence first, then the span from the first '{' or '[' to its last matching
// closer, and finally the whole trimmed text.
func ExtractJSON(raw string) string {
	return candidates(raw)[0]
}

// candidates lists payloads to try in order. Without a fence the span opened by
// the earlier bracket comes first and the one opened by the other bracket second.
func candidates(raw string) []string {
	if m := fencedJSON.FindStringSubmatch(raw); m != nil {
		return []string{m[1]}
	}
	var out []string
	first := strings.IndexAny(raw, "{[")
	if first >= 0 {
		openers := "{["
		if raw[first] == '[' {
			openers = "[{"
		}
		for _, open := range openers {
			if span, ok := bracketSpan(raw, byte(open)); ok {
				out = append(out, span)
			}
		}
	}
	if len(out) == 0 {
		out = append(out, strings.TrimSpace(raw))
	}
	return out
}

func bracketSpan(raw string, open byte) (string, bool) {
	closer := byte('}')
	if open == '[' {
		closer = ']'
	}
	start := strings.IndexByte(raw, open)
	end := strings.LastIndexByte(raw, closer)
	if start < 0 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

// ParseJSON decodes the first candidate payload that is valid JSON into v. It
// never attempts partial recovery.
func ParseJSON(raw string, v any) error {
	var firstErr error
	for _, payload := range candidates(raw) {
		err := json.Unmarshal([]byte(payload), v)
		if err == nil {
			return nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return fmt.Errorf("%w: %v", domai.ErrResponseParse, firstErr)
}

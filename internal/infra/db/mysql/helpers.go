package mysql

import "encoding/json"

// jsonList encodes a string list for a JSON column, never as null
func jsonList(s []string) string {
	if s == nil {
		s = []string{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// parseList decodes a JSON column, treating null or garbage as empty
func parseList(raw []byte) []string {
	var out []string
	if len(raw) == 0 || json.Unmarshal(raw, &out) != nil || out == nil {
		return []string{}
	}
	return out
}

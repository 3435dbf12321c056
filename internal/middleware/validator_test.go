package middleware

import "testing"

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://example.com", false},
		{"http://shop.example.co.uk/path?q=1", false},
		{"", true},
		{"ftp://example.com", true},
		{"javascript:alert(1)", true},
		{"https://", true},
		{"http://localhost:8080", true},
		{"http://127.0.0.1", true},
		{"http://[::1]/", true},
		{"http://10.0.0.5", true},
		{"http://192.168.1.1", true},
		{"http://172.20.0.1", true},
		{"http://169.254.169.254/latest/meta-data", true},
		{"http://metadata.google.internal", true},
		{"http://8.8.8.8", false},
	}
	for _, tt := range tests {
		err := ValidateURL(tt.url)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
		}
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := map[string]string{
		"  example.com ":       "https://example.com",
		"http://example.com":   "http://example.com",
		"https://example.com/": "https://example.com/",
		"":                     "",
	}
	for in, want := range tests {
		if got := NormalizeURL(in); got != want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	for _, ok := range []string{"a@b.co", "first.last+tag@example.org"} {
		if err := ValidateEmail(ok); err != nil {
			t.Errorf("ValidateEmail(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"", "plain", "a@b", "a b@c.d", "@example.com"} {
		if err := ValidateEmail(bad); err == nil {
			t.Errorf("ValidateEmail(%q) should fail", bad)
		}
	}
}

func TestValidateBudget(t *testing.T) {
	if err := ValidateBudget(-1); err == nil {
		t.Error("negative budget accepted")
	}
	if err := ValidateBudget(0); err != nil {
		t.Error(err)
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  hi\x00\x07 there\n "); got != "hi there" {
		t.Errorf("SanitizeString() = %q", got)
	}
}

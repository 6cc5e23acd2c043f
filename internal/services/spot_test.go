package services

import (
	"strings"
	"testing"
)

func TestResolveSpotCode(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want string
		ok   bool
	}{
		{"upper", "AUTD", "gds_AUTD", true},
		{"lower", "autd", "gds_AUTD", true},
		{"with spaces", " XAU ", "hf_XAU", true},
		{"chinese alias", "黄金", "gds_AUTD", true},
		{"unknown", "BTC", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := resolveSpotCode(tt.arg)
			if ok != tt.ok || got != tt.want {
				t.Errorf("resolveSpotCode(%q) = %q, %v; want %q, %v", tt.arg, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestParseSpotQuote(t *testing.T) {
	data := `var hq_str_gds_AUTD="黄金延期,550.00,548.00,552.30,553.10,547.20";`

	quote, err := parseSpotQuote(data, "gds_AUTD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Name != "黄金延期" {
		t.Errorf("expected name 黄金延期, got %q", quote.Name)
	}
	if quote.Price != 552.30 {
		t.Errorf("expected price 552.30, got %v", quote.Price)
	}
	if quote.High != 553.10 || quote.Low != 547.20 {
		t.Errorf("expected high/low 553.10/547.20, got %v/%v", quote.High, quote.Low)
	}
	if quote.Change <= 0 {
		t.Errorf("expected positive change, got %v", quote.Change)
	}
}

func TestParseSpotQuoteInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no quoted section", `var hq_str_gds_AUTD=;`},
		{"too few fields", `var hq_str_gds_AUTD="黄金延期,550.00";`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseSpotQuote(tt.data, "gds_AUTD"); err == nil {
				t.Errorf("expected error for %q", tt.data)
			}
		})
	}
}

func TestFormatSpotMessage(t *testing.T) {
	data := `var hq_str_gds_AUTD="黄金延期,550.00,548.00,552.30,553.10,547.20";`
	quote, err := parseSpotQuote(data, "gds_AUTD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := formatSpotMessage(quote)
	if !strings.Contains(out, "📈") {
		t.Errorf("expected up marker, got %q", out)
	}
	if !strings.Contains(out, "552.30") || !strings.Contains(out, "黄金延期") {
		t.Errorf("expected price and name in message, got %q", out)
	}
}

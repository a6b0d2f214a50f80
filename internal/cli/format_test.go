package cli

import (
	"math"
	"strings"
	"testing"

	"github.com/theirongolddev/fcast/internal/model"
)

func TestFormatCost(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{-2920, "-$2,920.00"},
		{1234.565, "$1,234.57"},
		{-1234.565, "-$1,234.57"},
		{2811.8412, "$2,811.84"},
		{-0.004, "$0.00"},
		{1_000_000, "$1,000,000.00"},
		{math.NaN(), NotAvailable},
	}
	for _, tt := range tests {
		if got := FormatCost(tt.in); got != tt.want {
			t.Errorf("FormatCost(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-45000, "-45,000"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercentAndSentinels(t *testing.T) {
	if got := FormatPercent(101.5084); got != "101.5%" {
		t.Errorf("FormatPercent = %q", got)
	}
	if got := FormatPercent(math.NaN()); got != NotAvailable {
		t.Errorf("FormatPercent(NaN) = %q, want %q", got, NotAvailable)
	}
	if got := FormatGB(4399.04); got != "4,399.0 GB" {
		t.Errorf("FormatGB = %q", got)
	}
}

func TestFormatMonthIsOneBased(t *testing.T) {
	if got := FormatMonth(0); got != "Month 1" {
		t.Errorf("FormatMonth(0) = %q", got)
	}
	if got := FormatMonth(model.NoBreakEven); got != "none" {
		t.Errorf("FormatMonth(NoBreakEven) = %q", got)
	}
	if got := FormatAverageMonth(4.25); got != "Month 5.2" && got != "Month 5.3" {
		t.Errorf("FormatAverageMonth(4.25) = %q", got)
	}
	if got := FormatAverageMonth(math.NaN()); got != "none" {
		t.Errorf("FormatAverageMonth(NaN) = %q", got)
	}
}

func TestFormatCostShort(t *testing.T) {
	if got := FormatCostShort(-2920); got != "-$2.9K" {
		t.Errorf("FormatCostShort(-2920) = %q", got)
	}
	if got := FormatCostShort(1_500_000); got != "$1.5M" {
		t.Errorf("FormatCostShort(1.5M) = %q", got)
	}
}

func TestRenderSparklineHandlesNegatives(t *testing.T) {
	got := []rune(RenderSparkline([]float64{-3000, -1500, 0, 3000}))
	if len(got) != 4 {
		t.Fatalf("sparkline length = %d, want 4", len(got))
	}
	if got[0] != '▁' || got[3] != '█' {
		t.Fatalf("sparkline = %q, want lowest first and highest last", string(got))
	}
	if RenderSparkline(nil) != "" {
		t.Fatal("empty input should render nothing")
	}
}

func TestRenderTableSeparatorRow(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Month", "Value"},
		Rows:    [][]string{{"1", "a"}, {Separator}, {"2", "b"}},
	})
	if strings.Count(out, "├") != 2 {
		t.Fatalf("expected header and row separators, got:\n%s", out)
	}
}

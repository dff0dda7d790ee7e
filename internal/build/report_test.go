package build

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		want     string
	}{
		{"1299", "USD", "1,299.00 USD"},
		{"329.99", "EUR", "329.99 EUR"},
		{"0", "USD", "0.00 USD"},
		{"1234567.5", "INR", "1,234,567.50 INR"},
		{"1.005", "USD", "1.01 USD"},
		{"2.675", "USD", "2.68 USD"},
		{"99999999999999999999", "USD", "99,999,999,999,999,999,999.00 USD"},
		{"12345678901234567.89", "USD", "12,345,678,901,234,567.89 USD"},
		{"-1234.5", "USD", "-1,234.50 USD"},
		{"-0.001", "USD", "0.00 USD"},
		{"5", "", "5.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMoney(decimal.RequireFromString(tt.amount), tt.currency))
	}
}

func TestToText(t *testing.T) {
	text := ToText(sampleBuild())

	assert.True(t, strings.HasPrefix(text, "PC Build Report: Creator Tower\n"))
	assert.Contains(t, text, "Generated: 2026-03-14 09:26:53 UTC")
	assert.Contains(t, text, "Build ID: b-123")
	assert.Contains(t, text, "CPU: Ryzen 7 7700X")
	assert.Contains(t, text, "GPU: GeForce RTX 4070")
	assert.Contains(t, text, "  Price: 329.99 USD")
	assert.Contains(t, text, "  Price: 1,299.00 EUR")
	assert.Contains(t, text, "  Key Features: 8 cores, AM5")
	assert.Contains(t, text, "TOTAL ESTIMATED COST: 1,628.99 USD")
	assert.Contains(t, text, "COMPATIBILITY WARNINGS:\n  • Check BIOS version")
	assert.Contains(t, text, "RECOMMENDED RETAILERS:\n  • Micro Center")

	assert.NotContains(t, text, "ASSEMBLY TIPS")
	assert.NotContains(t, text, "FUTURE UPGRADE RECOMMENDATIONS")
	assert.Equal(t, 1, strings.Count(text, "Key Features"))
}

func TestToTextSectionOrder(t *testing.T) {
	text := ToText(sampleBuild())

	order := []string{"BUILD SUMMARY:", "COMPONENTS:", "TOTAL ESTIMATED COST:", "COMPATIBILITY WARNINGS:", "REQUIRED TOOLS:", "PERFORMANCE EXPECTATION:", "RECOMMENDED RETAILERS:"}
	last := -1
	for _, heading := range order {
		i := strings.Index(text, heading)
		if assert.GreaterOrEqual(t, i, 0, heading) {
			assert.Greater(t, i, last, heading)
			last = i
		}
	}
}

func TestToHTML(t *testing.T) {
	b := sampleBuild()
	b.BuildName = `<script>alert("x")</script>`

	doc := ToHTML(b)

	assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
	assert.Contains(t, doc, "CPU: Ryzen 7 7700X")
	assert.Contains(t, doc, "1,299.00 EUR")
	assert.Contains(t, doc, "Compatibility Warnings")
	assert.Contains(t, doc, "Recommended Retailers")
	assert.NotContains(t, doc, "Assembly Tips")
	assert.NotContains(t, doc, "Future Upgrade Recommendations")
	assert.NotContains(t, doc, "<script>")
	assert.Contains(t, doc, "&lt;script&gt;")
}

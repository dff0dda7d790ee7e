package build

import (
	"fmt"
	"html/template"
	"math/big"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const (
	timestampLayout = "2006-01-02 15:04:05"
	bullet          = "•"
)

// FormatMoney renders d as "1,299.00 USD", rounding half away from zero.
func FormatMoney(d decimal.Decimal, currency string) string {
	fixed := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	whole, frac, _ := strings.Cut(fixed, ".")

	n, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return strings.TrimSpace(sign + fixed + " " + currency)
	}
	return strings.TrimSpace(sign + humanize.BigComma(n) + "." + frac + " " + currency)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout) + " UTC"
}

func componentCurrency(c Component, r *BuildResponse) string {
	if c.Currency != "" {
		return c.Currency
	}
	return r.Currency
}

// ToText renders the plain-text report.
func ToText(r *BuildResponse) string {
	var b strings.Builder

	fmt.Fprintf(&b, "PC Build Report: %s\n", r.BuildName)
	fmt.Fprintf(&b, "Generated: %s\n", formatTimestamp(r.GeneratedAt))
	fmt.Fprintf(&b, "Build ID: %s\n", r.BuildID)
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	b.WriteString("BUILD SUMMARY:\n")
	b.WriteString(r.BuildSummary + "\n\n")

	b.WriteString("COMPONENTS:\n")
	b.WriteString(strings.Repeat("-", 40) + "\n")
	for _, c := range r.Components {
		fmt.Fprintf(&b, "%s: %s\n", c.Category, c.Name)
		fmt.Fprintf(&b, "  Brand: %s\n", c.Brand)
		fmt.Fprintf(&b, "  Model: %s\n", c.Model)
		fmt.Fprintf(&b, "  Price: %s\n", FormatMoney(c.EstimatedPrice, componentCurrency(c, r)))
		fmt.Fprintf(&b, "  Description: %s\n", c.Description)
		fmt.Fprintf(&b, "  Why Recommended: %s\n", c.WhyRecommended)
		if len(c.KeyFeatures) > 0 {
			fmt.Fprintf(&b, "  Key Features: %s\n", strings.Join(c.KeyFeatures, ", "))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "TOTAL ESTIMATED COST: %s\n\n", FormatMoney(r.TotalEstimatedCost, r.Currency))

	writeTextList(&b, "COMPATIBILITY WARNINGS", r.CompatibilityWarnings)
	writeTextList(&b, "REQUIRED TOOLS", r.RequiredTools)
	writeTextList(&b, "ASSEMBLY TIPS", r.AssemblyTips)

	b.WriteString("PERFORMANCE EXPECTATION:\n")
	b.WriteString(r.PerformanceExpectation + "\n\n")

	writeTextList(&b, "FUTURE UPGRADE RECOMMENDATIONS", r.RecommendedUpgrades)
	writeTextList(&b, "RECOMMENDED RETAILERS", r.LocalRetailers)

	return b.String()
}

func writeTextList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(title + ":\n")
	for _, item := range items {
		fmt.Fprintf(b, "  %s %s\n", bullet, item)
	}
	b.WriteString("\n")
}

type htmlSection struct {
	Title string
	Class string
	Items []string
}

type htmlView struct {
	*BuildResponse
	Generated  string
	Total      string
	Components []htmlComponent
	Before     []htmlSection
	After      []htmlSection
}

type htmlComponent struct {
	Component
	Price string
}

// The PDF renderer does not fetch network resources, so the document must
// stay self-contained: inline styles only, no scripts, no links.
var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>PC Build Report - {{.BuildName}}</title>
<style>
@page { size: A4; margin: 18mm; }
body { font-family: Arial, Helvetica, sans-serif; margin: 0; color: #222; }
.header { border-bottom: 2px solid #333; margin-bottom: 20px; }
.component { margin-bottom: 16px; padding: 10px; border: 1px solid #ddd; page-break-inside: avoid; }
.component-title { font-weight: bold; color: #333; }
.price { color: #007bff; font-weight: bold; }
.total { font-size: 18px; font-weight: bold; color: #28a745; }
.warning { color: #dc3545; }
.tip { color: #6c757d; }
</style>
</head>
<body>
<header class="header">
<h1>PC Build Report: {{.BuildName}}</h1>
<p>Generated: {{.Generated}}</p>
<p>Build ID: {{.BuildID}}</p>
</header>
<section>
<h2>Build Summary</h2>
<p>{{.BuildSummary}}</p>
</section>
<section>
<h2>Components</h2>
{{- range .Components}}
<article class="component">
<div class="component-title">{{.Category}}: {{.Name}}</div>
<p><strong>Brand:</strong> {{.Brand}}</p>
<p><strong>Model:</strong> {{.Model}}</p>
<p><strong>Price:</strong> <span class="price">{{.Price}}</span></p>
<p><strong>Description:</strong> {{.Description}}</p>
<p><strong>Why Recommended:</strong> {{.WhyRecommended}}</p>
{{- if .KeyFeatures}}
<p><strong>Key Features:</strong> {{range $i, $f := .KeyFeatures}}{{if $i}}, {{end}}{{$f}}{{end}}</p>
{{- end}}
</article>
{{- end}}
</section>
<section class="total">
<h2>Total Estimated Cost: {{.Total}}</h2>
</section>
{{- range .Before}}
<section>
<h2>{{.Title}}</h2>
<ul>{{$class := .Class}}{{range .Items}}<li{{if $class}} class="{{$class}}"{{end}}>{{.}}</li>{{end}}</ul>
</section>
{{- end}}
<section>
<h2>Performance Expectation</h2>
<p>{{.PerformanceExpectation}}</p>
</section>
{{- range .After}}
<section>
<h2>{{.Title}}</h2>
<ul>{{range .Items}}<li>{{.}}</li>{{end}}</ul>
</section>
{{- end}}
</body>
</html>
`))

// ToHTML renders the report as a self-contained HTML document.
func ToHTML(r *BuildResponse) string {
	view := htmlView{
		BuildResponse: r,
		Generated:     formatTimestamp(r.GeneratedAt),
		Total:         FormatMoney(r.TotalEstimatedCost, r.Currency),
		Before: nonEmpty(
			htmlSection{Title: "Compatibility Warnings", Class: "warning", Items: r.CompatibilityWarnings},
			htmlSection{Title: "Required Tools", Items: r.RequiredTools},
			htmlSection{Title: "Assembly Tips", Class: "tip", Items: r.AssemblyTips},
		),
		After: nonEmpty(
			htmlSection{Title: "Future Upgrade Recommendations", Items: r.RecommendedUpgrades},
			htmlSection{Title: "Recommended Retailers", Items: r.LocalRetailers},
		),
	}
	for _, c := range r.Components {
		view.Components = append(view.Components, htmlComponent{
			Component: c,
			Price:     FormatMoney(c.EstimatedPrice, componentCurrency(c, r)),
		})
	}

	var b strings.Builder
	if err := reportTemplate.Execute(&b, view); err != nil {
		// Only reachable on a writer failure; fall back to the text report.
		return "<!DOCTYPE html><html><head><meta charset=\"utf-8\"></head><body><pre>" +
			template.HTMLEscapeString(ToText(r)) + "</pre></body></html>"
	}
	return b.String()
}

func nonEmpty(sections ...htmlSection) []htmlSection {
	out := make([]htmlSection, 0, len(sections))
	for _, s := range sections {
		if len(s.Items) > 0 {
			out = append(out, s)
		}
	}
	return out
}

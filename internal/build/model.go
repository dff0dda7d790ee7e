package build

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"pcbuild/internal/normalize"
)

const (
	DefaultCurrency     = "USD"
	DefaultMonitorCount = 1
)

// UserPreferences is what the user asked for.
type UserPreferences struct {
	Purpose              string          `json:"purpose"`
	Budget               decimal.Decimal `json:"budget" validate:"gt=0"`
	Currency             string          `json:"currency"`
	Location             string          `json:"location"`
	PreferredStyle       string          `json:"preferredStyle"`
	RGBLighting          bool            `json:"rgbLighting"`
	ConnectionType       string          `json:"connectionType"` // Wired | Wireless | Mixed
	MonitorCount         int             `json:"monitorCount"`
	MonitorSize          string          `json:"monitorSize"`
	Resolution           string          `json:"resolution"`
	PreferredBrands      []string        `json:"preferredBrands"`
	ExperienceLevel      string          `json:"experienceLevel"`
	OverclockingInterest bool            `json:"overclockingInterest"`
	FormFactor           string          `json:"formFactor"` // ATX | Micro-ATX | Mini-ITX
	SpecialRequirements  []string        `json:"specialRequirements"`
}

func (p *UserPreferences) UnmarshalJSON(data []byte) error {
	type alias UserPreferences
	a := alias{Currency: DefaultCurrency, MonitorCount: DefaultMonitorCount}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = UserPreferences(a)
	return nil
}

func (p *UserPreferences) currency() string {
	if p == nil || p.Currency == "" {
		return DefaultCurrency
	}
	return p.Currency
}

type BuildRequest struct {
	Preferences          *UserPreferences `json:"preferences" validate:"required"`
	IncludePeripherals   bool             `json:"includePeripherals"`
	IncludeAssemblyGuide bool             `json:"includeAssemblyGuide"`
	AdditionalNotes      string           `json:"additionalNotes"`
}

func (r *BuildRequest) UnmarshalJSON(data []byte) error {
	type alias BuildRequest
	a := alias{IncludePeripherals: true, IncludeAssemblyGuide: true}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*r = BuildRequest(a)
	return nil
}

// Component is one recommended part.
type Component struct {
	Name                 string          `json:"name"`
	Category             string          `json:"category"` // CPU | GPU | Motherboard | RAM | Storage | PSU | Case | Cooler | ...
	Brand                string          `json:"brand"`
	Model                string          `json:"model"`
	EstimatedPrice       decimal.Decimal `json:"estimatedPrice"`
	Currency             string          `json:"currency"`
	Description          string          `json:"description"`
	KeyFeatures          []string        `json:"keyFeatures"`
	WhyRecommended       string          `json:"whyRecommended"`
	CompatibilityNotes   []string        `json:"compatibilityNotes"`
	Availability         string          `json:"availability"`
	RecommendedRetailers []string        `json:"recommendedRetailers"`
}

// MarshalJSON writes the price as a JSON number.
func (c Component) MarshalJSON() ([]byte, error) {
	type alias Component
	return json.Marshal(struct {
		alias
		EstimatedPrice json.Number `json:"estimatedPrice"`
	}{alias(c), amount(c.EstimatedPrice)})
}

func (c *Component) normalize() {
	c.KeyFeatures = orEmpty(c.KeyFeatures)
	c.CompatibilityNotes = orEmpty(c.CompatibilityNotes)
	c.RecommendedRetailers = orEmpty(c.RecommendedRetailers)
}

type BuildResponse struct {
	BuildName              string          `json:"buildName"`
	BuildSummary           string          `json:"buildSummary"`
	Components             []Component     `json:"components"`
	TotalEstimatedCost     decimal.Decimal `json:"totalEstimatedCost"`
	Currency               string          `json:"currency"`
	CompatibilityWarnings  []string        `json:"compatibilityWarnings"`
	AssemblyTips           []string        `json:"assemblyTips"`
	RequiredTools          []string        `json:"requiredTools"`
	PerformanceExpectation string          `json:"performanceExpectation"`
	RecommendedUpgrades    []string        `json:"recommendedUpgrades"`
	LocalRetailers         []string        `json:"localRetailers"`
	GeneratedAt            time.Time       `json:"generatedAt"`
	BuildID                string          `json:"buildId"`
}

func (r BuildResponse) MarshalJSON() ([]byte, error) {
	type alias BuildResponse
	return json.Marshal(struct {
		alias
		TotalEstimatedCost json.Number `json:"totalEstimatedCost"`
	}{alias(r), amount(r.TotalEstimatedCost)})
}

// Normalize replaces missing sequences with empty ones.
func (r *BuildResponse) Normalize() {
	if r.Components == nil {
		r.Components = []Component{}
	}
	for i := range r.Components {
		r.Components[i].normalize()
	}
	r.CompatibilityWarnings = orEmpty(r.CompatibilityWarnings)
	r.AssemblyTips = orEmpty(r.AssemblyTips)
	r.RequiredTools = orEmpty(r.RequiredTools)
	r.RecommendedUpgrades = orEmpty(r.RecommendedUpgrades)
	r.LocalRetailers = orEmpty(r.LocalRetailers)
}

// UpgradeRequest asks for upgrade advice. Either CurrentBuild (free text)
// or Build (a previously generated response) must be present.
type UpgradeRequest struct {
	CurrentBuild     string         `json:"currentBuild"`
	Build            *BuildResponse `json:"build,omitempty"`
	ImprovementGoals string         `json:"improvementGoals" validate:"required"`
}

type UpgradeSuggestion struct {
	Component       string          `json:"component"`
	Reason          string          `json:"reason"`
	EstimatedCost   decimal.Decimal `json:"estimatedCost"`
	PerformanceGain string          `json:"performanceGain"`
	Difficulty      string          `json:"difficulty"`
}

func (u UpgradeSuggestion) MarshalJSON() ([]byte, error) {
	type alias UpgradeSuggestion
	return json.Marshal(struct {
		alias
		EstimatedCost json.Number `json:"estimatedCost"`
	}{alias(u), amount(u.EstimatedCost)})
}

type UpgradeResponse struct {
	UpgradeRecommendations []UpgradeSuggestion `json:"upgradeRecommendations"`
	PriorityOrder          []string            `json:"priorityOrder"`
	BudgetOptions          []string            `json:"budgetOptions"`
	CompatibilityNotes     []string            `json:"compatibilityNotes"`
	GeneratedAt            time.Time           `json:"generatedAt"`
	UpgradeID              string              `json:"upgradeId"`
}

func (r *UpgradeResponse) Normalize() {
	if r.UpgradeRecommendations == nil {
		r.UpgradeRecommendations = []UpgradeSuggestion{}
	}
	r.PriorityOrder = orEmpty(r.PriorityOrder)
	r.BudgetOptions = orEmpty(r.BudgetOptions)
	r.CompatibilityNotes = orEmpty(r.CompatibilityNotes)
}

// amount encodes a price as an unquoted JSON number without touching the
// package-wide decimal encoding flag.
func amount(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// ComponentSchema lists the per-component members that hold string lists.
var ComponentSchema = normalize.Schema{
	Lists: []string{"keyFeatures", "compatibilityNotes", "recommendedRetailers"},
}

// ResponseSchema drives coercion of a BuildResponse payload.
var ResponseSchema = normalize.Schema{
	Lists: []string{
		"compatibilityWarnings",
		"assemblyTips",
		"requiredTools",
		"recommendedUpgrades",
		"localRetailers",
	},
	Nested: map[string]normalize.Schema{
		"components": ComponentSchema,
	},
}

var UpgradeSchema = normalize.Schema{
	Lists: []string{"priorityOrder", "budgetOptions", "compatibilityNotes"},
}

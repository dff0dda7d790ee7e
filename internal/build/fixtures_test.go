package build

import (
	"time"

	"github.com/shopspring/decimal"
)

var fixedNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func sampleBuild() *BuildResponse {
	return &BuildResponse{
		BuildName:    "Creator Tower",
		BuildSummary: "Balanced workstation for editing and light gaming.",
		Components: []Component{
			{
				Name:           "Ryzen 7 7700X",
				Category:       "CPU",
				Brand:          "AMD",
				Model:          "7700X",
				EstimatedPrice: decimal.RequireFromString("329.99"),
				Description:    "8-core desktop processor",
				KeyFeatures:    []string{"8 cores", "AM5"},
				WhyRecommended: "Strong multi-threaded performance",
			},
			{
				Name:           "GeForce RTX 4070",
				Category:       "GPU",
				Brand:          "NVIDIA",
				Model:          "RTX 4070",
				EstimatedPrice: decimal.RequireFromString("1299"),
				Currency:       "EUR",
				KeyFeatures:    []string{},
			},
		},
		TotalEstimatedCost:     decimal.RequireFromString("1628.99"),
		Currency:               "USD",
		CompatibilityWarnings:  []string{"Check BIOS version"},
		AssemblyTips:           []string{},
		RequiredTools:          []string{"Phillips screwdriver"},
		PerformanceExpectation: "1440p high settings",
		RecommendedUpgrades:    []string{},
		LocalRetailers:         []string{"Micro Center"},
		GeneratedAt:            fixedNow,
		BuildID:                "b-123",
	}
}

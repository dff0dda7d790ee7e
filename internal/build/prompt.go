package build

import (
	"fmt"
	"strings"

	"pcbuild/internal/llm"
)

// BuildPrompt describes the request in plain language for the backend.
func BuildPrompt(req *BuildRequest) llm.Prompt {
	p := req.Preferences

	var b strings.Builder
	b.WriteString("Generate a PC build for:\n")
	fmt.Fprintf(&b, "Purpose: %s\n", p.Purpose)
	fmt.Fprintf(&b, "Budget: %s %s\n", p.Budget.StringFixed(2), p.currency())
	fmt.Fprintf(&b, "Location: %s\n", p.Location)
	fmt.Fprintf(&b, "Style: %s\n", p.PreferredStyle)
	fmt.Fprintf(&b, "RGB Lighting: %s\n", yesNo(p.RGBLighting))
	fmt.Fprintf(&b, "Connection Type: %s\n", p.ConnectionType)
	fmt.Fprintf(&b, "Monitor Count: %d\n", p.MonitorCount)
	fmt.Fprintf(&b, "Monitor Size: %s\n", p.MonitorSize)
	fmt.Fprintf(&b, "Resolution: %s\n", p.Resolution)
	fmt.Fprintf(&b, "Preferred Brands: %s\n", strings.Join(p.PreferredBrands, ", "))
	fmt.Fprintf(&b, "Experience Level: %s\n", p.ExperienceLevel)
	fmt.Fprintf(&b, "Overclocking Interest: %s\n", yesNo(p.OverclockingInterest))
	fmt.Fprintf(&b, "Form Factor: %s\n", p.FormFactor)
	fmt.Fprintf(&b, "Special Requirements: %s\n", strings.Join(p.SpecialRequirements, ", "))
	fmt.Fprintf(&b, "Include Peripherals: %s\n", yesNo(req.IncludePeripherals))
	fmt.Fprintf(&b, "Include Assembly Guide: %s\n", yesNo(req.IncludeAssemblyGuide))
	fmt.Fprintf(&b, "Additional Notes: %s\n", req.AdditionalNotes)
	fmt.Fprintf(&b, "All prices must be in %s.", p.currency())

	return llm.Prompt{
		System:    llm.BuildSystemPrompt,
		User:      b.String(),
		MaxTokens: llm.BuildMaxTokens,
	}
}

// UpgradePrompt asks for upgrades to an existing build. currentBuild is the
// already-rendered description of that build.
func UpgradePrompt(currentBuild, goals string) llm.Prompt {
	user := fmt.Sprintf("Current PC Build:\n%s\n\nImprovement Goals:\n%s\n\nSuggest specific upgrades to achieve these goals.",
		strings.TrimSpace(currentBuild), strings.TrimSpace(goals))

	return llm.Prompt{
		System:    llm.UpgradeSystemPrompt,
		User:      user,
		MaxTokens: llm.UpgradeMaxTokens,
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// Package profile defines the closed language and tier enums and the static
// language profile table consulted by the sizing calculator. Adding a
// language is a data change in the embedded table, not a logic change.
package profile

import (
	"fmt"
)

// Language identifies a supported runtime language profile.
type Language string

const (
	// LanguageJava is a JVM workload: high baseline memory, slow startup.
	LanguageJava Language = "java"

	// LanguageGo is an AOT-compiled workload: small footprint, fast startup.
	LanguageGo Language = "go"

	// LanguagePython is an interpreted workload.
	LanguagePython Language = "python"

	// LanguageDotnet is a .NET workload with server GC.
	LanguageDotnet Language = "dotnet"
)

// SupportedLanguages returns all supported languages.
func SupportedLanguages() []Language {
	return []Language{LanguageJava, LanguageGo, LanguagePython, LanguageDotnet}
}

// SupportedLanguagesAsStrings returns supported languages as strings.
func SupportedLanguagesAsStrings() []string {
	langs := SupportedLanguages()
	strs := make([]string, len(langs))
	for i, l := range langs {
		strs[i] = string(l)
	}
	return strs
}

// IsValid reports whether l is a supported language.
func (l Language) IsValid() bool {
	switch l {
	case LanguageJava, LanguageGo, LanguagePython, LanguageDotnet:
		return true
	default:
		return false
	}
}

// Tier identifies the deployment posture.
type Tier string

const (
	// TierProd favors availability and predictable throttling behavior.
	TierProd Tier = "prod"

	// TierDev favors cost over safety margins.
	TierDev Tier = "dev"
)

// SupportedTiers returns all supported tiers.
func SupportedTiers() []Tier {
	return []Tier{TierProd, TierDev}
}

// IsValid reports whether t is a supported tier.
func (t Tier) IsValid() bool {
	return t == TierProd || t == TierDev
}

// ParseTier converts a string to a Tier.
func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if !t.IsValid() {
		return "", fmt.Errorf("unknown tier: %q, supported values: %v", s, SupportedTiers())
	}
	return t, nil
}

// StartupClass classifies how quickly a runtime becomes ready to serve.
// It drives the startup probe window in the generated Deployment.
type StartupClass string

const (
	// StartupFast runtimes are ready within a few seconds.
	StartupFast StartupClass = "fast"

	// StartupSlow runtimes (JVM warmup) need an extended probe window
	// to avoid crash loops during boot.
	StartupSlow StartupClass = "slow"
)

// IsValid reports whether c is a known startup class.
func (c StartupClass) IsValid() bool {
	return c == StartupFast || c == StartupSlow
}

// LanguageProfile is a static table entry describing the baseline resource
// characteristics of a runtime language.
type LanguageProfile struct {
	ID Language `json:"id" yaml:"id"`

	// CPUPerRequestMillicores is the estimated CPU cost of serving one
	// request per second, in millicores.
	CPUPerRequestMillicores int64 `json:"cpuPerRequestMillicores" yaml:"cpuPerRequestMillicores"`

	// BaseMemoryMiB is the runtime's memory footprint before serving traffic.
	BaseMemoryMiB int64 `json:"baseMemoryMiB" yaml:"baseMemoryMiB"`

	// MemoryPerRequestMiB is the estimated memory held per in-flight request.
	MemoryPerRequestMiB int64 `json:"memoryPerRequestMiB" yaml:"memoryPerRequestMiB"`

	StartupClass StartupClass `json:"startupClass" yaml:"startupClass"`
}

// validate checks that a table entry is usable by the sizing calculator.
func (p *LanguageProfile) validate() error {
	if !p.ID.IsValid() {
		return fmt.Errorf("profile id %q is not a supported language", p.ID)
	}
	if p.CPUPerRequestMillicores <= 0 {
		return fmt.Errorf("profile %s: cpuPerRequestMillicores must be positive, got %d", p.ID, p.CPUPerRequestMillicores)
	}
	if p.BaseMemoryMiB <= 0 {
		return fmt.Errorf("profile %s: baseMemoryMiB must be positive, got %d", p.ID, p.BaseMemoryMiB)
	}
	if p.MemoryPerRequestMiB <= 0 {
		return fmt.Errorf("profile %s: memoryPerRequestMiB must be positive, got %d", p.ID, p.MemoryPerRequestMiB)
	}
	if !p.StartupClass.IsValid() {
		return fmt.Errorf("profile %s: unknown startup class %q", p.ID, p.StartupClass)
	}
	return nil
}

package profile

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"

	gperrors "github.com/performance-portal/goldenpath/pkg/errors"
)

//go:embed data/profiles-v1.yaml
var profileData []byte

var (
	tableOnce   sync.Once
	cachedTable map[Language]*LanguageProfile
	tableErr    error
)

type table struct {
	Profiles []*LanguageProfile `yaml:"profiles"`
}

// loadTable parses the embedded profile table once and caches it for the
// lifetime of the process. The table is read-only after this point.
func loadTable() (map[Language]*LanguageProfile, error) {
	tableOnce.Do(func() {
		var t table
		if err := yaml.Unmarshal(profileData, &t); err != nil {
			tableErr = fmt.Errorf("failed to unmarshal profile table: %w", err)
			return
		}

		m := make(map[Language]*LanguageProfile, len(t.Profiles))
		for _, p := range t.Profiles {
			if p == nil {
				continue
			}
			if err := p.validate(); err != nil {
				tableErr = fmt.Errorf("invalid profile table entry: %w", err)
				return
			}
			m[p.ID] = p
		}

		// The table must be total over the supported enum.
		for _, l := range SupportedLanguages() {
			if _, ok := m[l]; !ok {
				tableErr = fmt.Errorf("profile table is missing entry for language %q", l)
				return
			}
		}

		cachedTable = m
	})
	return cachedTable, tableErr
}

// Lookup returns the profile for the given language id.
// Unsupported ids fail with an UNKNOWN_LANGUAGE error carrying the closest
// supported language as a suggestion.
func Lookup(id Language) (*LanguageProfile, error) {
	t, err := loadTable()
	if err != nil {
		return nil, gperrors.Wrap(err, gperrors.ErrCodeInternal, "profile table unavailable")
	}

	p, ok := t[id]
	if !ok {
		e := gperrors.New(gperrors.ErrCodeUnknownLanguage,
			"unsupported language %q, supported values: %v", id, SupportedLanguagesAsStrings()).
			WithDetail("language", string(id))
		if s := closestLanguage(string(id)); s != "" {
			e = e.WithDetail("suggestion", s)
		}
		return nil, e
	}
	return p, nil
}

// ParseLanguage converts a string to a Language, failing like Lookup does so
// callers get the same suggestion behavior from flag parsing.
func ParseLanguage(s string) (Language, error) {
	l := Language(s)
	if _, err := Lookup(l); err != nil {
		return "", err
	}
	return l, nil
}

// closestLanguage returns the supported language nearest to s by edit
// distance, or "" when nothing is plausibly close.
func closestLanguage(s string) string {
	const maxDistance = 3

	best := ""
	bestDist := maxDistance + 1
	for _, l := range SupportedLanguages() {
		if d := levenshtein.ComputeDistance(s, string(l)); d < bestDist {
			best = string(l)
			bestDist = d
		}
	}
	return best
}

package scanner

import (
	"fmt"
	"regexp"

	"github.com/dkrasnov/pdfscan/internal/models"
)

// Matcher pairs a finding type with its compiled pattern. Registering a
// new Matcher is all it takes to detect a new sensitive data type.
type Matcher struct {
	Type    models.FindingType
	Pattern *regexp.Regexp
}

// DefaultMatchers returns the built-in exact-match patterns. Order is
// preserved in scan output.
func DefaultMatchers() []Matcher {
	return []Matcher{
		{Type: models.FindingSSN, Pattern: regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)},
		{Type: models.FindingEmail, Pattern: regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)},
	}
}

// RegexScanner applies an ordered list of regex matchers to each page.
// Regex matches are exact, so every finding reports confidence 1.0.
type RegexScanner struct {
	matchers []Matcher
}

// NewRegexScanner builds a scanner from the given matchers, falling back
// to DefaultMatchers when none are given.
func NewRegexScanner(matchers ...Matcher) *RegexScanner {
	if len(matchers) == 0 {
		matchers = DefaultMatchers()
	}
	return &RegexScanner{matchers: matchers}
}

// Scan checks every page against every registered matcher. An empty
// page contributes zero findings; a page never aborts the scan.
func (s *RegexScanner) Scan(pages []string) ([]*models.Finding, error) {
	findings := []*models.Finding{}
	for i, text := range pages {
		if text == "" {
			continue
		}
		location := fmt.Sprintf("page %d", i+1)
		for _, m := range s.matchers {
			for range m.Pattern.FindAllStringIndex(text, -1) {
				findings = append(findings, models.NewFinding("", m.Type, location, 1.0))
			}
		}
	}
	return findings, nil
}

func (s *RegexScanner) SupportedTypes() []models.FindingType {
	types := make([]models.FindingType, 0, len(s.matchers))
	for _, m := range s.matchers {
		types = append(types, m.Type)
	}
	return types
}

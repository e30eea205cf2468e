package scanner

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkrasnov/pdfscan/internal/models"
)

func TestRegexScanner_SSNAndEmail(t *testing.T) {
	s := NewRegexScanner()

	findings, err := s.Scan([]string{"SSN: 123-45-6789, contact test@example.com"})
	require.NoError(t, err)
	require.Len(t, findings, 2)

	assert.Equal(t, models.FindingSSN, findings[0].Type)
	assert.Equal(t, models.FindingEmail, findings[1].Type)
	for _, f := range findings {
		assert.Equal(t, "page 1", f.Location)
		assert.Equal(t, 1.0, f.Confidence)
		assert.Empty(t, f.DocumentID)
		assert.NotEmpty(t, f.ID)
	}
}

func TestRegexScanner_NoMatches(t *testing.T) {
	s := NewRegexScanner()

	findings, err := s.Scan([]string{"nothing sensitive on this page"})
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestRegexScanner_PageNumbering(t *testing.T) {
	s := NewRegexScanner()

	findings, err := s.Scan([]string{
		"clean page",
		"", // extractor could not decode this page
		"reach me at a.b+c@mail.example.org",
	})
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, "page 3", findings[0].Location)
}

func TestRegexScanner_MultipleMatchesPerPage(t *testing.T) {
	s := NewRegexScanner()

	findings, err := s.Scan([]string{"111-22-3333 and 444-55-6666"})
	require.NoError(t, err)
	require.Len(t, findings, 2)
	for _, f := range findings {
		assert.Equal(t, models.FindingSSN, f.Type)
		assert.Equal(t, "page 1", f.Location)
	}
}

func TestRegexScanner_NoPartialSSNMatch(t *testing.T) {
	s := NewRegexScanner()

	findings, err := s.Scan([]string{"order id 1234-56-7890 is not an ssn"})
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestRegexScanner_CustomMatcher(t *testing.T) {
	phone := models.FindingType("phone")
	s := NewRegexScanner(Matcher{
		Type:    phone,
		Pattern: regexp.MustCompile(`\b\d{3}-\d{3}-\d{4}\b`),
	})

	findings, err := s.Scan([]string{"call 555-123-4567"})
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, phone, findings[0].Type)

	assert.Equal(t, []models.FindingType{phone}, s.SupportedTypes())
}

func TestRegexScanner_SupportedTypes(t *testing.T) {
	s := NewRegexScanner()
	assert.Equal(t, []models.FindingType{models.FindingSSN, models.FindingEmail}, s.SupportedTypes())
}

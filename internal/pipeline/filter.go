package pipeline

import (
	"strconv"
	"strings"

	"github.com/jimezsa/jobradar/internal/models"
)

// Filter returns the postings that satisfy criteria, preserving input order.
func Filter(postings []models.Posting, criteria models.FilterCriteria) []models.Posting {
	kept := make([]models.Posting, 0, len(postings))
	for _, posting := range postings {
		if Matches(posting, criteria) {
			kept = append(kept, posting)
		}
	}
	return kept
}

// Matches runs the title, company and salary checks in that order.
func Matches(posting models.Posting, criteria models.FilterCriteria) bool {
	if len(criteria.TitleKeywords) > 0 && !containsAnyFold(posting.Position, criteria.TitleKeywords) {
		return false
	}
	if len(criteria.ExcludeCompanies) > 0 && containsAnyFold(posting.Company, criteria.ExcludeCompanies) {
		return false
	}
	if criteria.MinSalary > 0 && posting.Salary != "" {
		if value, ok := ParseSalary(posting.Salary); ok && value < int64(criteria.MinSalary) {
			return false
		}
	}
	return true
}

// ParseSalary keeps only the ASCII digits of value and parses them as one
// integer. Ranges therefore concatenate: "£45,000 - £55,000" becomes
// 4500055000 and decimals like "80,000.00" gain two zeros. This is a known
// approximation; it errs towards keeping postings.
//
// ok is false when there are no digits or the number overflows, in which case
// the salary check does not drop the posting.
func ParseSalary(value string) (int64, bool) {
	var digits strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}
	parsed, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

func containsAnyFold(text string, needles []string) bool {
	text = strings.ToLower(text)
	for _, needle := range needles {
		if strings.Contains(text, strings.ToLower(needle)) {
			return true
		}
	}
	return false
}

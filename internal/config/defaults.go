package config

import "github.com/jimezsa/jobradar/internal/models"

var (
	defaultKeywords = []string{"Senior iOS Engineer", "iOS Developer", "Mobile Engineer"}

	defaultLocations = []struct {
		label    string
		location string
	}{
		{"London", "London, United Kingdom"},
		{"Amsterdam", "Amsterdam, Netherlands"},
		{"Copenhagen", "Copenhagen, Denmark"},
		{"Stockholm", "Stockholm, Sweden"},
		{"Helsinki", "Helsinki, Finland"},
		{"UAE", "United Arab Emirates"},
	}
)

// DefaultSearchConfig is the built-in batch: every keyword in every
// location, posted in the last 24 hours.
func DefaultSearchConfig() SearchConfig {
	searches := make([]models.SearchQuery, 0, len(defaultKeywords)*len(defaultLocations))
	for _, loc := range defaultLocations {
		for _, keyword := range defaultKeywords {
			searches = append(searches, models.SearchQuery{
				Name:            keyword + " - " + loc.label,
				Keyword:         keyword,
				Location:        loc.location,
				DateSincePosted: models.RecencyDay,
				JobType:         "full time",
				ExperienceLevel: "mid-senior level",
				Limit:           25,
			})
		}
	}

	return SearchConfig{
		Searches: searches,
		Filters: models.FilterCriteria{
			TitleKeywords:    []string{"ios", "mobile", "engineer", "developer", "software"},
			ExcludeCompanies: []string{},
			PreferredKeywords: []string{
				"swift", "swiftui", "uikit", "mvvm", "rxswift", "combine",
				"tdd", "ci/cd", "fastlane", "senior", "lead", "architect",
			},
		},
		Profile: &models.Profile{
			YearsOfExperience: 9,
			CurrentTitle:      "Senior iOS Engineer",
			Location:          "London, UK",
			Skills: []string{
				"Swift", "Objective-C", "SwiftUI", "UIKit", "RxSwift", "MVVM", "VIPER",
				"TDD", "CI/CD", "Fastlane", "AWS", "Node.js", "React.js",
			},
			VisaStatus: "UK Skilled Worker Visa eligible",
		},
	}
}

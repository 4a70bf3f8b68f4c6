package models

// FilterCriteria is applied uniformly to every query's results.
type FilterCriteria struct {
	// TitleKeywords are OR-ed; one case-insensitive match keeps the posting.
	TitleKeywords []string `json:"titleKeywords"`
	// ExcludeCompanies drops a posting when any entry matches the company.
	ExcludeCompanies []string `json:"excludeCompanies"`
	// PreferredKeywords only affect scoring.
	PreferredKeywords []string `json:"preferredKeywords"`
	// MinSalary is inactive at zero.
	MinSalary int `json:"minSalary" validate:"gte=0"`
}

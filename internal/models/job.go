package models

// Posting is one listing as returned by the provider. URL is the
// deduplication key.
type Posting struct {
	Position    string
	Company     string
	Location    string
	Date        string
	AgoTime     string
	Salary      string
	URL         string
	CompanyLogo string
}

// Posted prefers the relative age ("2 days ago") over the raw date.
func (p Posting) Posted() string {
	if p.AgoTime != "" {
		return p.AgoTime
	}
	return p.Date
}

// ScoredPosting is a posting with its relevance score attached.
type ScoredPosting struct {
	Posting
	RelevanceScore int
}

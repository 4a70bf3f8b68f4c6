package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/jobradar/internal/models"
	"github.com/jimezsa/jobradar/internal/network"
)

const (
	SiteLinkedIn = "linkedin"

	linkedInSearchURL = "https://www.linkedin.com/jobs-guest/jobs/api/seeMoreJobPostings/search"
	linkedInPageSize  = 25
	linkedInMaxPages  = 40
)

var (
	linkedInRecency = map[models.Recency]string{
		models.RecencyDay:       "r86400",
		models.RecencyPastWeek:  "r604800",
		models.RecencyPastMonth: "r2592000",
	}
	linkedInExperience = map[string]string{
		"internship":       "1",
		"entry level":      "2",
		"associate":        "3",
		"senior":           "4",
		"mid-senior level": "4",
		"mid-senior":       "4",
		"director":         "5",
		"executive":        "6",
	}
	linkedInRemote = map[string]string{
		"on-site": "1",
		"on site": "1",
		"onsite":  "1",
		"remote":  "2",
		"hybrid":  "3",
	}
	linkedInJobType = map[string]string{
		"full time":  "F",
		"full-time":  "F",
		"part time":  "P",
		"part-time":  "P",
		"contract":   "C",
		"temporary":  "T",
		"volunteer":  "V",
		"internship": "I",
	}
	linkedInSalary = map[int]string{
		40000:  "1",
		60000:  "2",
		80000:  "3",
		100000: "4",
		120000: "5",
	}
)

type LinkedIn struct {
	client *network.Client
}

func NewLinkedIn(client *network.Client) *LinkedIn {
	return &LinkedIn{client: client}
}

func (l *LinkedIn) Name() string {
	return SiteLinkedIn
}

// Query walks the guest search pages until the query's limit is reached or
// the provider runs out of cards.
func (l *LinkedIn) Query(ctx context.Context, query models.SearchQuery) ([]models.Posting, error) {
	limit := int(query.Limit)
	page := int(query.Page)

	postings := []models.Posting{}
	for i := 0; i < linkedInMaxPages; i++ {
		if limit > 0 && len(postings) >= limit {
			break
		}

		start := (page + i) * linkedInPageSize
		doc, err := fetchDocument(ctx, l.client, buildLinkedInURL(query, start), nil)
		if err != nil {
			var statusErr *StatusError
			if i > 0 && errors.As(err, &statusErr) {
				break
			}
			return nil, fmt.Errorf("linkedin: %w", err)
		}

		cards := parseLinkedInJobs(doc)
		for _, posting := range cards {
			if limit > 0 && len(postings) >= limit {
				break
			}
			postings = append(postings, posting)
		}
		if len(cards) < linkedInPageSize {
			break
		}
	}

	return postings, nil
}

func buildLinkedInURL(query models.SearchQuery, start int) string {
	values := url.Values{}
	if keyword := strings.TrimSpace(query.Keyword); keyword != "" {
		values.Set("keywords", keyword)
	}
	if location := strings.TrimSpace(query.Location); location != "" {
		values.Set("location", location)
	}
	if code, ok := linkedInRecency[models.NormalizeRecency(string(query.DateSincePosted))]; ok {
		values.Set("f_TPR", code)
	}
	if code, ok := linkedInSalary[int(query.Salary)]; ok {
		values.Set("f_SB2", code)
	}
	if code := lookupFold(linkedInExperience, query.ExperienceLevel); code != "" {
		values.Set("f_E", code)
	}
	if code := lookupFold(linkedInRemote, query.RemoteFilter); code != "" {
		values.Set("f_WT", code)
	}
	if code := lookupFold(linkedInJobType, query.JobType); code != "" {
		values.Set("f_JT", code)
	}
	switch strings.ToLower(strings.TrimSpace(query.SortBy)) {
	case "recent":
		values.Set("sortBy", "DD")
	case "relevant":
		values.Set("sortBy", "R")
	}
	values.Set("start", strconv.Itoa(start))
	return linkedInSearchURL + "?" + values.Encode()
}

func lookupFold(table map[string]string, key string) string {
	key = strings.Join(strings.Fields(strings.ToLower(key)), " ")
	if key == "" {
		return ""
	}
	return table[key]
}

func parseLinkedInJobs(doc *goquery.Document) []models.Posting {
	var postings []models.Posting

	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		link := s.Find("a.base-card__full-link").First()
		posting := models.Posting{
			Position:    cleanText(s.Find(".base-search-card__title").First().Text()),
			Company:     cleanText(s.Find(".base-search-card__subtitle").First().Text()),
			Location:    cleanText(s.Find(".job-search-card__location").First().Text()),
			Date:        strings.TrimSpace(s.Find("time").First().AttrOr("datetime", "")),
			AgoTime:     cleanText(s.Find(".job-search-card__listdate, .job-search-card__listdate--new").First().Text()),
			Salary:      cleanText(s.Find(".job-search-card__salary-info").First().Text()),
			URL:         canonicalLinkedInURL(link.AttrOr("href", "")),
			CompanyLogo: strings.TrimSpace(s.Find(".artdeco-entity-image").First().AttrOr("data-delayed-url", "")),
		}

		if posting.Position == "" || posting.Company == "" || posting.URL == "" {
			return
		}
		postings = append(postings, posting)
	})

	return postings
}

// canonicalLinkedInURL drops tracking parameters (refId, trackingId,
// position, pageNum) that differ between result pages for the same listing.
func canonicalLinkedInURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(absoluteURL("https://www.linkedin.com", raw))
	if err != nil {
		return raw
	}
	parsed.RawQuery = ""
	parsed.Fragment = ""
	return parsed.String()
}

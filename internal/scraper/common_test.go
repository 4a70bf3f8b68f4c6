package scraper

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/jobradar/internal/models"
)

func TestAbsoluteURL(t *testing.T) {
	base := "https://example.com/path/page"
	cases := []struct {
		href string
		want string
	}{
		{"/jobs/1", "https://example.com/jobs/1"},
		{"https://other.com/a", "https://other.com/a"},
		{"//cdn.example.com/asset", "https://cdn.example.com/asset"},
		{"", ""},
	}

	for _, tc := range cases {
		got := absoluteURL(base, tc.href)
		if got != tc.want {
			t.Fatalf("absoluteURL(%q) = %q, want %q", tc.href, got, tc.want)
		}
	}
}

func TestCleanText(t *testing.T) {
	got := cleanText("  Senior&nbsp;iOS \n\t Engineer &amp; Lead ")
	want := "Senior iOS Engineer & Lead"
	if got != want {
		t.Fatalf("cleanText() = %q, want %q", got, want)
	}
}

func TestStatusError(t *testing.T) {
	err := &StatusError{Code: 429, URL: "https://example.com"}
	if err.Error() != "http 429" {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestApplyHeadersMergesDefaults(t *testing.T) {
	req, err := fhttp.NewRequest(fhttp.MethodGet, "https://www.linkedin.com/jobs", nil)
	if err != nil {
		t.Fatal(err)
	}
	applyHeaders(req, map[string]string{"Accept-Language": "en-GB", "Referer": "https://www.linkedin.com/"})

	if got := req.Header.Get("accept-language"); got != "en-GB" {
		t.Fatalf("accept-language = %q, want override", got)
	}
	if got := req.Header.Get("accept"); !strings.HasPrefix(got, "text/html") {
		t.Fatalf("accept = %q, want default", got)
	}
	if got := req.Header.Get("referer"); got == "" {
		t.Fatalf("referer missing")
	}
}

func TestFetchDocumentWithoutClient(t *testing.T) {
	if _, err := fetchDocument(context.Background(), nil, "https://www.linkedin.com", nil); err == nil {
		t.Fatalf("fetchDocument() error = nil without a client")
	}
}

func TestLinkedInQueryWithoutClient(t *testing.T) {
	postings, err := NewLinkedIn(nil).Query(context.Background(), models.SearchQuery{Keyword: "ios"})
	if err == nil || postings != nil {
		t.Fatalf("Query() = %v, %v; want error", postings, err)
	}
}

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse document: %v", err)
	}
	return doc
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jimezsa/jobradar/internal/models"
)

func TestParseSearchConfigJSON5(t *testing.T) {
	data := `{
  searches: [
    {
      name: 'iOS Developer - London',
      keyword: ' iOS Developer ',
      location: 'London, United Kingdom',
      dateSincePosted: 'past Week',
      jobType: 'full time',
      limit: '25',
      page: '0',
      salary: '',
    },
  ],
  filters: {
    titleKeywords: ['ios', ' ', 'mobile'],
    excludeCompanies: [],
    preferredKeywords: ['swift', ''],
    minSalary: 0,
  },
  profile: { currentTitle: 'Senior iOS Engineer', yearsOfExperience: 9 },
}`

	cfg, err := ParseSearchConfig([]byte(data), FormatJSON5)
	if err != nil {
		t.Fatalf("ParseSearchConfig() error = %v", err)
	}
	if len(cfg.Searches) != 1 {
		t.Fatalf("len(Searches) = %d, want 1", len(cfg.Searches))
	}
	q := cfg.Searches[0]
	if q.Keyword != "iOS Developer" || q.Limit != 25 || q.Page != 0 || q.Salary != 0 {
		t.Fatalf("unexpected query: %+v", q)
	}
	if q.DateSincePosted != models.RecencyPastWeek {
		t.Fatalf("DateSincePosted = %q, want %q", q.DateSincePosted, models.RecencyPastWeek)
	}
	if strings.Join(cfg.Filters.TitleKeywords, ",") != "ios,mobile" {
		t.Fatalf("TitleKeywords = %v", cfg.Filters.TitleKeywords)
	}
	if len(cfg.Filters.PreferredKeywords) != 1 {
		t.Fatalf("PreferredKeywords = %v", cfg.Filters.PreferredKeywords)
	}
	if cfg.Profile == nil || cfg.Profile.YearsOfExperience != 9 {
		t.Fatalf("unexpected profile: %+v", cfg.Profile)
	}
}

func TestParseSearchConfigYAML(t *testing.T) {
	data := `
searches:
  - name: Mobile Engineer - Helsinki
    keyword: Mobile Engineer
    location: Helsinki, Finland
    dateSincePosted: 24hr
    limit: 10
filters:
  titleKeywords: [mobile]
  minSalary: 50000
`
	cfg, err := ParseSearchConfig([]byte(data), FormatYAML)
	if err != nil {
		t.Fatalf("ParseSearchConfig() error = %v", err)
	}
	if cfg.Searches[0].Limit != 10 || cfg.Filters.MinSalary != 50000 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Profile != nil {
		t.Fatalf("expected no profile, got %+v", cfg.Profile)
	}
}

func TestParseSearchConfigRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		data string
		want string
	}{
		{"malformed", `{searches: [`, "parse json"},
		{"no searches", `{searches: []}`, ErrNoSearches.Error()},
		{"missing keyword", `{searches: [{location: 'London'}]}`, "searches[0].keyword: required"},
		{"unknown recency", `{searches: [{keyword: 'ios', dateSincePosted: 'yesterday'}]}`, "searches[0].dateSincePosted: recency"},
		{"negative salary", `{searches: [{keyword: 'ios'}], filters: {minSalary: -1}}`, "filters.minSalary: gte=0"},
		{"bad limit", `{searches: [{keyword: 'ios', limit: 'lots'}]}`, "decode config"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSearchConfig([]byte(tc.data), FormatJSON5)
			if err == nil {
				t.Fatalf("ParseSearchConfig() error = nil")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("ParseSearchConfig() error = %q, want it to contain %q", err.Error(), tc.want)
			}
		})
	}
}

func TestResolveSearchConfigOrder(t *testing.T) {
	useTempConfigDir(t)
	t.Setenv(SearchConfigEnv, "")

	cfg, source, err := ResolveSearchConfig("", "")
	if err != nil {
		t.Fatalf("ResolveSearchConfig() error = %v", err)
	}
	if source != "built-in" || len(cfg.Searches) != 18 {
		t.Fatalf("expected built-in table, got %s with %d searches", source, len(cfg.Searches))
	}

	dir := t.TempDir()
	defaultPath := filepath.Join(dir, "default.yaml")
	if err := os.WriteFile(defaultPath, []byte("searches:\n  - keyword: from-default\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, source, err = ResolveSearchConfig("", defaultPath)
	if err != nil || source != defaultPath || cfg.Searches[0].Keyword != "from-default" {
		t.Fatalf("default path: %v %s %+v", err, source, cfg.Searches)
	}

	t.Setenv(SearchConfigEnv, `{"searches":[{"keyword":"from-env","limit":"5"}]}`)
	cfg, source, err = ResolveSearchConfig("", defaultPath)
	if err != nil || source != SearchConfigEnv || cfg.Searches[0].Keyword != "from-env" {
		t.Fatalf("env: %v %s %+v", err, source, cfg.Searches)
	}

	explicit := filepath.Join(dir, "explicit.json")
	if err := os.WriteFile(explicit, []byte(`{"searches":[{"keyword":"from-flag"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, source, err = ResolveSearchConfig(explicit, defaultPath)
	if err != nil || source != explicit || cfg.Searches[0].Keyword != "from-flag" {
		t.Fatalf("explicit: %v %s %+v", err, source, cfg.Searches)
	}

	_, _, err = ResolveSearchConfig(filepath.Join(dir, "missing.json"), "")
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing explicit path error = %v, want ErrNotExist", err)
	}
}

func TestResolveSearchConfigBadEnv(t *testing.T) {
	useTempConfigDir(t)
	t.Setenv(SearchConfigEnv, `{not json`)
	if _, _, err := ResolveSearchConfig("", ""); err == nil {
		t.Fatalf("expected error for malformed %s", SearchConfigEnv)
	}
}

func TestDefaultSearchConfigIsValid(t *testing.T) {
	cfg := DefaultSearchConfig()
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate(default) error = %v", err)
	}
	if cfg.Searches[0].Name != "Senior iOS Engineer - London" {
		t.Fatalf("unexpected first search: %q", cfg.Searches[0].Name)
	}
	if last := cfg.Searches[len(cfg.Searches)-1]; last.Location != "United Arab Emirates" {
		t.Fatalf("unexpected last search: %+v", last)
	}
}

func TestNormalizeDropsEmptyFilterEntries(t *testing.T) {
	cfg := SearchConfig{
		Searches: []models.SearchQuery{{Keyword: "ios"}},
		Filters: models.FilterCriteria{
			TitleKeywords:     []string{"", " ios "},
			ExcludeCompanies:  []string{"  ", "Acme"},
			PreferredKeywords: []string{"", "swift", "\t"},
		},
	}.Normalize()

	if got := cfg.Filters.TitleKeywords; len(got) != 1 || got[0] != "ios" {
		t.Fatalf("TitleKeywords = %#v", got)
	}
	if got := cfg.Filters.ExcludeCompanies; len(got) != 1 || got[0] != "Acme" {
		t.Fatalf("ExcludeCompanies = %#v", got)
	}
	if got := cfg.Filters.PreferredKeywords; len(got) != 1 || got[0] != "swift" {
		t.Fatalf("PreferredKeywords = %#v", got)
	}
}

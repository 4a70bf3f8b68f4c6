package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jimezsa/jobradar/internal/models"
	"github.com/yosuke-furukawa/json5/encoding/json5"
	"gopkg.in/yaml.v3"
)

// SearchConfigEnv holds a whole search configuration as JSON, the way CI
// workflows pass it.
const SearchConfigEnv = "SEARCH_CONFIG"

var ErrNoSearches = errors.New("search config has no searches")

// SearchConfig is the batch definition: the queries, the filters shared by
// all of them and an optional candidate profile.
type SearchConfig struct {
	Searches []models.SearchQuery  `json:"searches" validate:"dive"`
	Filters  models.FilterCriteria `json:"filters"`
	Profile  *models.Profile       `json:"profile,omitempty"`
}

type Format string

const (
	FormatJSON5 Format = "json5"
	FormatYAML  Format = "yaml"
)

// FormatForPath picks YAML for .yaml/.yml and JSON5 (a JSON superset) otherwise.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON5
	}
}

// ParseSearchConfig decodes, normalizes and validates a search configuration.
func ParseSearchConfig(data []byte, format Format) (SearchConfig, error) {
	var generic any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return SearchConfig{}, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		if err := json5.Unmarshal(data, &generic); err != nil {
			return SearchConfig{}, fmt.Errorf("parse json: %w", err)
		}
	}

	// Round-trip through encoding/json so both formats share the same field
	// names and the lenient number handling of models.FlexInt.
	canonical, err := json.Marshal(generic)
	if err != nil {
		return SearchConfig{}, fmt.Errorf("normalize config: %w", err)
	}
	var cfg SearchConfig
	if err := json.Unmarshal(canonical, &cfg); err != nil {
		return SearchConfig{}, fmt.Errorf("decode config: %w", err)
	}

	cfg = cfg.Normalize()
	if err := Validate(cfg); err != nil {
		return SearchConfig{}, err
	}
	return cfg, nil
}

func LoadSearchConfig(path string) (SearchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SearchConfig{}, fmt.Errorf("read search config %q: %w", path, err)
	}
	cfg, err := ParseSearchConfig(data, FormatForPath(path))
	if err != nil {
		return SearchConfig{}, fmt.Errorf("search config %q: %w", path, err)
	}
	return cfg, nil
}

// ResolveSearchConfig returns the first available configuration among the
// explicit path, the SEARCH_CONFIG environment variable, the configured
// default path and the user config directory; the built-in table is the
// last resort. The second return value names the source.
func ResolveSearchConfig(explicitPath string, defaultPath string) (SearchConfig, string, error) {
	if path := strings.TrimSpace(explicitPath); path != "" {
		cfg, err := LoadSearchConfig(path)
		return cfg, path, err
	}

	if raw := strings.TrimSpace(os.Getenv(SearchConfigEnv)); raw != "" {
		cfg, err := ParseSearchConfig([]byte(raw), FormatJSON5)
		if err != nil {
			return SearchConfig{}, SearchConfigEnv, fmt.Errorf("%s: %w", SearchConfigEnv, err)
		}
		return cfg, SearchConfigEnv, nil
	}

	candidates := []string{strings.TrimSpace(defaultPath)}
	if path, err := SearchesPath(); err == nil {
		candidates = append(candidates, path)
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return SearchConfig{}, path, err
		}
		cfg, err := LoadSearchConfig(path)
		return cfg, path, err
	}

	return DefaultSearchConfig(), "built-in", nil
}

// Normalize trims every string list and drops empty entries. An empty entry
// would otherwise match every posting: every title kept, every company
// excluded, a point added to every score.
func (c SearchConfig) Normalize() SearchConfig {
	out := c
	out.Searches = make([]models.SearchQuery, 0, len(c.Searches))
	for _, query := range c.Searches {
		query.Name = strings.TrimSpace(query.Name)
		query.Keyword = strings.TrimSpace(query.Keyword)
		query.Location = strings.TrimSpace(query.Location)
		query.DateSincePosted = models.NormalizeRecency(string(query.DateSincePosted))
		out.Searches = append(out.Searches, query)
	}
	out.Filters.TitleKeywords = cleanList(c.Filters.TitleKeywords)
	out.Filters.ExcludeCompanies = cleanList(c.Filters.ExcludeCompanies)
	out.Filters.PreferredKeywords = cleanList(c.Filters.PreferredKeywords)
	return out
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		out = append(out, value)
	}
	return out
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("recency", func(fl validator.FieldLevel) bool {
		return models.Recency(fl.Field().String()).Valid()
	})
	return v
}

// Validate checks a search configuration and reports every problem with its
// JSON path, e.g. "searches[2].keyword: required".
func Validate(cfg SearchConfig) error {
	if len(cfg.Searches) == 0 {
		return ErrNoSearches
	}

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		path := fe.Namespace()
		if idx := strings.Index(path, "."); idx >= 0 {
			path = path[idx+1:]
		}
		problem := fe.Tag()
		if fe.Param() != "" {
			problem += "=" + fe.Param()
		}
		problems = append(problems, fmt.Sprintf("%s: %s", path, problem))
	}
	return fmt.Errorf("invalid search config: %s", strings.Join(problems, "; "))
}

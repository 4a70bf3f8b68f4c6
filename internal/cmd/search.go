package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/jimezsa/jobradar/internal/config"
	"github.com/jimezsa/jobradar/internal/models"
)

type SearchCmd struct {
	Keyword    string `arg:"" help:"Job keyword, e.g. \"ios developer\"."`
	Location   string `help:"Job location." env:"JOBRADAR_DEFAULT_LOCATION"`
	Posted     string `help:"Recency: 24hr, past week, past month." default:"past week"`
	JobType    string `help:"full time, part time, contract, temporary, volunteer, internship."`
	Remote     string `help:"on-site, remote, hybrid."`
	Experience string `help:"internship, entry level, associate, senior, director, executive."`
	Salary     int    `help:"Provider salary bucket: 40000, 60000, 80000, 100000, 120000."`
	Limit      int    `help:"Maximum results." default:"25" env:"JOBRADAR_DEFAULT_LIMIT"`
	Page       int    `help:"First result page (25 jobs per page)."`
	Sort       string `help:"Sort order: recent or relevant." enum:",recent,relevant" default:""`

	Title     []string `help:"Keep jobs whose title contains any of these words."`
	Exclude   []string `help:"Drop jobs from these companies."`
	Prefer    []string `help:"Keywords that raise a job's score."`
	MinSalary int      `help:"Drop jobs whose salary is below this amount."`

	QueryTimeout time.Duration `help:"Deadline for the query; 0 disables it."`
	Top          int           `help:"Ranked jobs to print; 0 prints all."`
	Format       string        `help:"Output format: table, csv, json, md." enum:",table,csv,json,md" default:""`
	Links        string        `help:"Table link display: short or full." enum:"short,full" default:"full"`
	Output       string        `name:"output" short:"o" help:"Write output to a file."`
	ProviderOptions
}

func (s *SearchCmd) Run(ctx *Context) error {
	searchCfg, err := s.searchConfig()
	if err != nil {
		return err
	}
	format, err := resolveFormat(ctx, s.Format, s.Output)
	if err != nil {
		return err
	}

	provider, err := newProvider(ctx, s.ProviderOptions)
	if err != nil {
		return err
	}

	result, err := runBatch(ctx, provider, searchCfg, batchOptions{QueryTimeout: s.QueryTimeout})
	if err != nil {
		return err
	}

	writer := ctx.Out
	if s.Output != "" {
		file, err := os.Create(s.Output)
		if err != nil {
			return err
		}
		defer file.Close()
		writer = file
	}
	if err := writeResult(ctx, writer, result, format, s.Links, s.Top); err != nil {
		return err
	}
	printRunSummary(ctx, result)
	return nil
}

// searchConfig turns the flags into a validated one-query batch.
func (s *SearchCmd) searchConfig() (config.SearchConfig, error) {
	searchCfg := config.SearchConfig{
		Searches: []models.SearchQuery{{
			Keyword:         s.Keyword,
			Location:        s.Location,
			DateSincePosted: models.Recency(s.Posted),
			JobType:         s.JobType,
			RemoteFilter:    s.Remote,
			ExperienceLevel: s.Experience,
			Salary:          models.FlexInt(s.Salary),
			Limit:           models.FlexInt(s.Limit),
			Page:            models.FlexInt(s.Page),
			SortBy:          s.Sort,
		}},
		Filters: models.FilterCriteria{
			TitleKeywords:     s.Title,
			ExcludeCompanies:  s.Exclude,
			PreferredKeywords: s.Prefer,
			MinSalary:         s.MinSalary,
		},
	}.Normalize()

	if err := config.Validate(searchCfg); err != nil {
		return config.SearchConfig{}, fmt.Errorf("search flags: %w", err)
	}
	return searchCfg, nil
}

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Recency is the provider's posting-age bucket.
type Recency string

const (
	RecencyAny       Recency = ""
	RecencyDay       Recency = "24hr"
	RecencyPastWeek  Recency = "past week"
	RecencyPastMonth Recency = "past month"
)

// NormalizeRecency folds case and whitespace so "past Week" and "past week" agree.
func NormalizeRecency(value string) Recency {
	return Recency(strings.Join(strings.Fields(strings.ToLower(value)), " "))
}

// Valid reports whether r is one of the known buckets.
func (r Recency) Valid() bool {
	switch NormalizeRecency(string(r)) {
	case RecencyAny, RecencyDay, RecencyPastWeek, RecencyPastMonth:
		return true
	default:
		return false
	}
}

// SearchQuery is one parameterized request sent to the provider.
type SearchQuery struct {
	Name            string  `json:"name"`
	Keyword         string  `json:"keyword" validate:"required"`
	Location        string  `json:"location"`
	DateSincePosted Recency `json:"dateSincePosted" validate:"recency"`
	JobType         string  `json:"jobType"`
	RemoteFilter    string  `json:"remoteFilter"`
	ExperienceLevel string  `json:"experienceLevel"`
	Limit           FlexInt `json:"limit" validate:"gte=0"`
	Page            FlexInt `json:"page" validate:"gte=0"`
	Salary          FlexInt `json:"salary" validate:"gte=0"`
	SortBy          string  `json:"sortBy,omitempty" validate:"omitempty,oneof=recent relevant"`
}

// Label is the human readable name used in logs.
func (q SearchQuery) Label() string {
	if name := strings.TrimSpace(q.Name); name != "" {
		return name
	}
	if q.Location == "" {
		return q.Keyword
	}
	return q.Keyword + " - " + q.Location
}

// FlexInt accepts both 25 and "25"; an empty string decodes to zero.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*f = 0
			return nil
		}
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid integer %q", raw)
		}
		*f = FlexInt(parsed)
		return nil
	}
	var number float64
	if err := json.Unmarshal(data, &number); err != nil {
		return err
	}
	*f = FlexInt(number)
	return nil
}

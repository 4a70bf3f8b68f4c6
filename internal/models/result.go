package models

import "time"

// Profile describes the candidate a batch was tuned for. It is carried
// through to the JSON artifact untouched.
type Profile struct {
	YearsOfExperience int      `json:"yearsOfExperience,omitempty"`
	CurrentTitle      string   `json:"currentTitle,omitempty"`
	Location          string   `json:"location,omitempty"`
	Skills            []string `json:"skills,omitempty"`
	VisaStatus        string   `json:"visaStatus,omitempty"`
}

// QueryOutcome records what one query contributed to a run.
type QueryOutcome struct {
	Name   string
	Found  int
	Kept   int
	Added  int
	Failed bool
}

// RunResult is the final artifact of one invocation.
type RunResult struct {
	RunID       string
	GeneratedAt time.Time
	TotalJobs   int
	Jobs        []ScoredPosting
	Profile     *Profile
	Queries     []QueryOutcome
}

// FailedQueries counts queries whose provider call failed.
func (r RunResult) FailedQueries() int {
	failed := 0
	for _, q := range r.Queries {
		if q.Failed {
			failed++
		}
	}
	return failed
}

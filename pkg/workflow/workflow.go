package workflow

import "fmt"

// Outcome is the terminal result of a job.
// Values outside the constants below are kept verbatim from the CI platform.
type Outcome string

const (
	Success   Outcome = "success"
	Failed    Outcome = "failed"
	Cancelled Outcome = "cancelled"
	TimedOut  Outcome = "timed_out"
)

// Status is the overall outcome of a workflow run
type Status = Outcome

// Job represents a finished job of a workflow run
type Job struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Outcome Outcome `json:"outcome"`
	HTMLURL string  `json:"html_url"`
}

// Run represents the workflow run that is being reported on
type Run struct {
	Name       string `json:"name"`
	HeadBranch string `json:"head_branch"`
	HTMLURL    string `json:"html_url"`
	Owner      string `json:"owner"`
	Repo       string `json:"repo"`
}

// FullName returns the owner/repo form of the repository
func (r *Run) FullName() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Repo)
}

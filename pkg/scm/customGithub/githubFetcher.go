package customGithub

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gimlet-io/workflow-notifier/pkg/workflow"
	"github.com/google/go-github/v37/github"
	"golang.org/x/oauth2"
)

// Fetcher reads the jobs and the metadata of a GitHub Actions workflow run
type Fetcher struct {
	client *github.Client
	owner  string
	repo   string
}

// NewFetcher returns a fetcher for the given owner/repo repository.
// A non-empty apiURL points the client to a GitHub Enterprise Server.
func NewFetcher(token string, repository string, apiURL string) (*Fetcher, error) {
	parts := strings.Split(repository, "/")
	if len(parts) != 2 {
		return nil, fmt.Errorf("cannot determine repo owner and name from %s", repository)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)

	client, err := newClient(tc, apiURL)
	if err != nil {
		return nil, err
	}

	return &Fetcher{
		client: client,
		owner:  parts[0],
		repo:   parts[1],
	}, nil
}

func newClient(httpClient *http.Client, apiURL string) (*github.Client, error) {
	if apiURL == "" {
		return github.NewClient(httpClient), nil
	}
	return github.NewEnterpriseClient(apiURL, apiURL, httpClient)
}

// CompletedJobs returns every job of the run that has a conclusion.
// A missing conclusion means the job hasn't finished yet. There is no reliable
// way to tell which job is running this report, so it is assumed to be the last
// one, and jobs still running after it are not reported either.
func (f *Fetcher) CompletedJobs(ctx context.Context, runID int64) ([]workflow.Job, error) {
	opts := &github.ListWorkflowJobsOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var jobs []workflow.Job
	for {
		page, resp, err := f.client.Actions.ListWorkflowJobs(ctx, f.owner, f.repo, runID, opts)
		if err != nil {
			return nil, err
		}

		for _, j := range page.Jobs {
			if j.GetConclusion() == "" {
				continue
			}
			jobs = append(jobs, workflow.Job{
				ID:      j.GetID(),
				Name:    j.GetName(),
				Outcome: outcome(j.GetConclusion()),
				HTMLURL: j.GetHTMLURL(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return jobs, nil
}

// WorkflowRun returns the metadata of the run
func (f *Fetcher) WorkflowRun(ctx context.Context, runID int64) (*workflow.Run, error) {
	run, _, err := f.client.Actions.GetWorkflowRunByID(ctx, f.owner, f.repo, runID)
	if err != nil {
		return nil, err
	}

	return &workflow.Run{
		Name:       run.GetName(),
		HeadBranch: run.GetHeadBranch(),
		HTMLURL:    run.GetHTMLURL(),
		Owner:      f.owner,
		Repo:       f.repo,
	}, nil
}

// GitHub reports failed jobs as "failure"
func outcome(conclusion string) workflow.Outcome {
	switch conclusion {
	case "failure":
		return workflow.Failed
	case "success":
		return workflow.Success
	case "cancelled":
		return workflow.Cancelled
	case "timed_out":
		return workflow.TimedOut
	default:
		return workflow.Outcome(conclusion)
	}
}

package customGitlab

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/gimlet-io/workflow-notifier/pkg/workflow"
	"github.com/xanzy/go-gitlab"
)

// Job states that won't change anymore.
// The reporting job itself is still running, so it is never among them.
var finished = map[string]workflow.Outcome{
	"success":  workflow.Success,
	"failed":   workflow.Failed,
	"canceled": workflow.Cancelled,
	"skipped":  "skipped",
}

// GitLab marks timed out jobs as failed, the reason tells them apart
const timeoutFailureReason = "job_execution_timeout"

// Fetcher reads the jobs and the metadata of a GitLab CI pipeline
type Fetcher struct {
	client      *gitlab.Client
	projectPath string
	owner       string
	repo        string
}

func NewFetcher(token string, projectPath string, apiURL string) (*Fetcher, error) {
	owner, repo, err := splitProjectPath(projectPath)
	if err != nil {
		return nil, err
	}

	git, err := gitlab.NewClient(token, gitlab.WithBaseURL(apiURL))
	if err != nil {
		return nil, err
	}

	return &Fetcher{
		client:      git,
		projectPath: projectPath,
		owner:       owner,
		repo:        repo,
	}, nil
}

// CompletedJobs returns the finished jobs of the pipeline in creation order.
// GitLab lists pipeline jobs newest first, so they are sorted by id.
func (f *Fetcher) CompletedJobs(ctx context.Context, pipelineID int64) ([]workflow.Job, error) {
	opts := &gitlab.ListJobsOptions{
		ListOptions: gitlab.ListOptions{PerPage: 100},
	}

	var jobs []workflow.Job
	for {
		page, resp, err := f.client.Jobs.ListPipelineJobs(f.projectPath, int(pipelineID), opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, err
		}

		for _, j := range page {
			outcome, ok := finished[j.Status]
			if !ok {
				continue
			}
			if outcome == workflow.Failed && j.FailureReason == timeoutFailureReason {
				outcome = workflow.TimedOut
			}
			jobs = append(jobs, workflow.Job{
				ID:      int64(j.ID),
				Name:    j.Name,
				Outcome: outcome,
				HTMLURL: j.WebURL,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	sort.SliceStable(jobs, func(i, j int) bool {
		return jobs[i].ID < jobs[j].ID
	})

	return jobs, nil
}

func (f *Fetcher) WorkflowRun(ctx context.Context, pipelineID int64) (*workflow.Run, error) {
	pipeline, _, err := f.client.Pipelines.GetPipeline(f.projectPath, int(pipelineID), gitlab.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	return &workflow.Run{
		Name:       fmt.Sprintf("Pipeline #%d", pipeline.ID),
		HeadBranch: pipeline.Ref,
		HTMLURL:    pipeline.WebURL,
		Owner:      f.owner,
		Repo:       f.repo,
	}, nil
}

// GitLab projects may live in nested groups, the last segment is the project name
func splitProjectPath(projectPath string) (string, string, error) {
	i := strings.LastIndex(projectPath, "/")
	if i <= 0 || i == len(projectPath)-1 {
		return "", "", fmt.Errorf("cannot determine group and project name from %s", projectPath)
	}
	return projectPath[:i], projectPath[i+1:], nil
}

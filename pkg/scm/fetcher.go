package scm

import (
	"context"
	"fmt"

	"github.com/gimlet-io/workflow-notifier/cmd/notifier/config"
	"github.com/gimlet-io/workflow-notifier/pkg/scm/customGithub"
	"github.com/gimlet-io/workflow-notifier/pkg/scm/customGitlab"
	"github.com/gimlet-io/workflow-notifier/pkg/workflow"
)

// Fetcher reads a workflow run and its jobs from a CI platform
type Fetcher interface {
	CompletedJobs(ctx context.Context, runID int64) ([]workflow.Job, error)
	WorkflowRun(ctx context.Context, runID int64) (*workflow.Run, error)
}

// NewFetcher returns the fetcher of the CI platform the process runs on
func NewFetcher(config *config.Config) (Fetcher, error) {
	if config.IsGithub() {
		apiURL := ""
		if config.IsGithubEnterprise() {
			apiURL = config.Github.APIURL
		}
		fetcher, err := customGithub.NewFetcher(config.Github.Token.String(), config.Github.Repository, apiURL)
		if err != nil {
			return nil, err
		}
		return fetcher, nil
	} else if config.IsGitlab() {
		fetcher, err := customGitlab.NewFetcher(config.Gitlab.Token.String(), config.Gitlab.ProjectPath, config.Gitlab.APIURL)
		if err != nil {
			return nil, err
		}
		return fetcher, nil
	}

	return nil, fmt.Errorf("cannot determine CI platform")
}

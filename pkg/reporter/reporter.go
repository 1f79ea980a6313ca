package reporter

import (
	"context"

	"github.com/gimlet-io/workflow-notifier/pkg/notifications"
	"github.com/gimlet-io/workflow-notifier/pkg/scm"
	"github.com/gimlet-io/workflow-notifier/pkg/workflow"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Reporter posts the outcome of a workflow run to chat channels
type Reporter struct {
	fetcher   scm.Fetcher
	provider  notifications.Provider
	channels  []string
	condensed bool
}

func New(
	fetcher scm.Fetcher,
	provider notifications.Provider,
	channels []string,
	condensed bool,
) *Reporter {
	return &Reporter{
		fetcher:   fetcher,
		provider:  provider,
		channels:  channels,
		condensed: condensed,
	}
}

// Report fetches the finished jobs and the run, then notifies every channel.
// Each step runs after the previous one, only the sends run concurrently.
func (r *Reporter) Report(ctx context.Context, runID int64) error {
	jobs, err := r.fetcher.CompletedJobs(ctx, runID)
	if err != nil {
		return errors.Wrap(err, "cannot list jobs")
	}
	logrus.Debugf("found %d completed jobs in run %d", len(jobs), runID)

	run, err := r.fetcher.WorkflowRun(ctx, runID)
	if err != nil {
		return errors.Wrap(err, "cannot get workflow run")
	}

	status := workflow.Classify(jobs)
	logrus.Infof("%s %s is %s", run.FullName(), run.Name, status)

	msg := notifications.NewWorkflowMessage(status, run, jobs, r.condensed)
	err = notifications.Notify(ctx, r.provider, msg, r.channels)
	if err != nil {
		return err
	}

	logrus.Infof("notified %d channel(s)", len(r.channels))
	return nil
}

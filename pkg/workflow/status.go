package workflow

// Classify derives the overall status of a run from its finished jobs.
//
// Every job has to succeed for the run to succeed. Otherwise the status defaults
// to failed, and each subsequent rule overrides the previous one:
// cancelled, then timed out, then failed.
func Classify(jobs []Job) Status {
	if all(jobs, Success) {
		return Success
	}

	status := Failed
	if some(jobs, Cancelled) {
		status = Cancelled
	}
	if some(jobs, TimedOut) {
		status = TimedOut
	}
	if some(jobs, Failed) {
		status = Failed
	}

	return status
}

func all(jobs []Job, outcome Outcome) bool {
	for _, j := range jobs {
		if j.Outcome != outcome {
			return false
		}
	}
	return true
}

func some(jobs []Job, outcome Outcome) bool {
	for _, j := range jobs {
		if j.Outcome == outcome {
			return true
		}
	}
	return false
}

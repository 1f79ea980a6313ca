package notifications

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/enescakir/emoji"
	"github.com/gimlet-io/workflow-notifier/pkg/workflow"
)

// placeholder makes it obvious if an outcome slipped through the mapping
const placeholder = ":moyai:"

// Icon returns the slack emoji code of an outcome
func Icon(outcome workflow.Outcome) string {
	switch outcome {
	case workflow.Success:
		return ":white_check_mark:"
	case workflow.Cancelled:
		return ":no_entry_sign:"
	case workflow.TimedOut:
		return ":clock10:"
	case workflow.Failed:
		return ":x:"
	default:
		return placeholder
	}
}

type workflowMessage struct {
	status    workflow.Status
	run       *workflow.Run
	jobs      []workflow.Job
	condensed bool
}

// NewWorkflowMessage formats the outcome of a workflow run.
// Condensed messages only carry the summary, otherwise every job gets its own line.
func NewWorkflowMessage(status workflow.Status, run *workflow.Run, jobs []workflow.Job, condensed bool) Message {
	return &workflowMessage{
		status:    status,
		run:       run,
		jobs:      jobs,
		condensed: condensed,
	}
}

func (wm *workflowMessage) AsSlackMessage() (*slackMessage, error) {
	msg := &slackMessage{
		// fallback for clients that can't render blocks
		Text: fmt.Sprintf("%s %s", Icon(wm.status), wm.run.FullName()),
		Blocks: []Block{
			{
				Type: section,
				Text: &Text{
					Type: markdown,
					Text: fmt.Sprintf("%s *%s* <%s|%s>", Icon(wm.status), wm.run.FullName(), wm.run.HTMLURL, wm.run.Name),
				},
			},
		},
	}

	if wm.condensed {
		return msg, nil
	}

	for _, j := range wm.jobs {
		msg.Blocks = append(msg.Blocks, Block{
			Type: section,
			Text: &Text{
				Type: markdown,
				Text: fmt.Sprintf("<%s|%s - %s %s>", j.HTMLURL, wm.run.HeadBranch, j.Name, Icon(j.Outcome)),
			},
		})
	}

	return msg, nil
}

func (wm *workflowMessage) AsDiscordMessage() (*discordMessage, error) {
	msg := &discordMessage{
		Text: fmt.Sprintf("%s **%s** [%s](%s)", emoji.Parse(Icon(wm.status)), wm.run.FullName(), wm.run.Name, wm.run.HTMLURL),
	}

	if wm.condensed {
		return msg, nil
	}

	lines := []string{}
	for _, j := range wm.jobs {
		lines = append(lines, fmt.Sprintf("[%s - %s](%s) %s", wm.run.HeadBranch, j.Name, j.HTMLURL, emoji.Parse(Icon(j.Outcome))))
	}

	msg.Embed = &discordgo.MessageEmbed{
		Type:        discordgo.EmbedTypeRich,
		Title:       wm.run.Name,
		URL:         wm.run.HTMLURL,
		Description: strings.Join(lines, "\n"),
		Color:       discordColor(wm.status),
	}

	return msg, nil
}

func (wm *workflowMessage) AsText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s (%s)\n", emoji.Parse(Icon(wm.status)), wm.run.FullName(), wm.run.Name, wm.run.HTMLURL)

	if wm.condensed {
		return b.String()
	}

	for _, j := range wm.jobs {
		fmt.Fprintf(&b, "  %s - %s %s (%s)\n", wm.run.HeadBranch, j.Name, emoji.Parse(Icon(j.Outcome)), j.HTMLURL)
	}

	return b.String()
}

func discordColor(status workflow.Status) int {
	switch status {
	case workflow.Success:
		return discordGreen
	case workflow.Cancelled:
		return discordGrey
	case workflow.TimedOut:
		return discordOrange
	default:
		return discordRed
	}
}

package notifications

import (
	"strings"
	"testing"

	"github.com/gimlet-io/workflow-notifier/pkg/workflow"
	"github.com/stretchr/testify/assert"
)

var run = &workflow.Run{
	Name:       "CI",
	HeadBranch: "main",
	HTMLURL:    "https://github.com/gimlet-io/onechart/actions/runs/42",
	Owner:      "gimlet-io",
	Repo:       "onechart",
}

var buildAndTest = []workflow.Job{
	{ID: 1, Name: "build", Outcome: workflow.Success, HTMLURL: "https://github.com/gimlet-io/onechart/runs/1"},
	{ID: 2, Name: "test", Outcome: workflow.Failed, HTMLURL: "https://github.com/gimlet-io/onechart/runs/2"},
}

func Test_Icon(t *testing.T) {
	assert.Equal(t, ":white_check_mark:", Icon(workflow.Success))
	assert.Equal(t, ":no_entry_sign:", Icon(workflow.Cancelled))
	assert.Equal(t, ":clock10:", Icon(workflow.TimedOut))
	assert.Equal(t, ":x:", Icon(workflow.Failed))
	assert.Equal(t, ":moyai:", Icon("skipped"))
	assert.Equal(t, ":moyai:", Icon(""))
}

func Test_SlackMessageSummary(t *testing.T) {
	msg, err := NewWorkflowMessage(workflow.Failed, run, buildAndTest, false).AsSlackMessage()
	assert.Nil(t, err)

	assert.Equal(t, ":x: gimlet-io/onechart", msg.Text)
	assert.Equal(t, section, msg.Blocks[0].Type)
	assert.Equal(t, markdown, msg.Blocks[0].Text.Type)
	assert.Equal(t, ":x: *gimlet-io/onechart* <https://github.com/gimlet-io/onechart/actions/runs/42|CI>", msg.Blocks[0].Text.Text)
}

func Test_SlackMessageJobs(t *testing.T) {
	msg, err := NewWorkflowMessage(workflow.Classify(buildAndTest), run, buildAndTest, false).AsSlackMessage()
	assert.Nil(t, err)

	assert.Len(t, msg.Blocks, 3)
	assert.Equal(t, "<https://github.com/gimlet-io/onechart/runs/1|main - build :white_check_mark:>", msg.Blocks[1].Text.Text)
	assert.Equal(t, "<https://github.com/gimlet-io/onechart/runs/2|main - test :x:>", msg.Blocks[2].Text.Text)
}

func Test_SlackMessageBlockCount(t *testing.T) {
	for n := 0; n < 5; n++ {
		jobs := []workflow.Job{}
		for i := 0; i < n; i++ {
			jobs = append(jobs, workflow.Job{Name: "job", Outcome: workflow.Success})
		}

		condensed, err := NewWorkflowMessage(workflow.Success, run, jobs, true).AsSlackMessage()
		assert.Nil(t, err)
		assert.Len(t, condensed.Blocks, 1)

		full, err := NewWorkflowMessage(workflow.Success, run, jobs, false).AsSlackMessage()
		assert.Nil(t, err)
		assert.Len(t, full.Blocks, n+1)
	}
}

func Test_SlackMessageUnmappedOutcome(t *testing.T) {
	jobs := []workflow.Job{{Name: "docs", Outcome: "neutral", HTMLURL: "https://github.com/gimlet-io/onechart/runs/3"}}

	msg, err := NewWorkflowMessage(workflow.Classify(jobs), run, jobs, false).AsSlackMessage()
	assert.Nil(t, err)
	assert.Equal(t, "<https://github.com/gimlet-io/onechart/runs/3|main - docs :moyai:>", msg.Blocks[1].Text.Text)
}

func Test_DiscordMessage(t *testing.T) {
	msg, err := NewWorkflowMessage(workflow.Failed, run, buildAndTest, false).AsDiscordMessage()
	assert.Nil(t, err)

	assert.Contains(t, msg.Text, "**gimlet-io/onechart**")
	assert.Contains(t, msg.Text, "[CI](https://github.com/gimlet-io/onechart/actions/runs/42)")
	assert.Equal(t, discordRed, msg.Embed.Color)

	lines := strings.Split(msg.Embed.Description, "\n")
	assert.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "[main - build](https://github.com/gimlet-io/onechart/runs/1)"))
	assert.True(t, strings.HasPrefix(lines[1], "[main - test](https://github.com/gimlet-io/onechart/runs/2)"))

	condensed, err := NewWorkflowMessage(workflow.Success, run, buildAndTest, true).AsDiscordMessage()
	assert.Nil(t, err)
	assert.Nil(t, condensed.Embed)
}

func Test_DiscordColor(t *testing.T) {
	assert.Equal(t, discordGreen, discordColor(workflow.Success))
	assert.Equal(t, discordGrey, discordColor(workflow.Cancelled))
	assert.Equal(t, discordOrange, discordColor(workflow.TimedOut))
	assert.Equal(t, discordRed, discordColor(workflow.Failed))
}

func Test_Text(t *testing.T) {
	text := NewWorkflowMessage(workflow.Failed, run, buildAndTest, false).AsText()
	lines := strings.Split(strings.TrimSpace(text), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "gimlet-io/onechart CI")
	assert.Contains(t, lines[1], "main - build")
	assert.Contains(t, lines[2], "main - test")

	condensed := NewWorkflowMessage(workflow.Failed, run, buildAndTest, true).AsText()
	assert.Len(t, strings.Split(strings.TrimSpace(condensed), "\n"), 1)
}

package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gimlet-io/workflow-notifier/pkg/notifications"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

const githubPublicAPI = "https://api.github.com"

// Environ returns the settings from the environment.
func Environ() (*Config, error) {
	cfg := Config{}
	err := envconfig.Process("", &cfg)
	defaults(&cfg)

	return &cfg, err
}

func defaults(c *Config) {
	if c.Github.APIURL == "" {
		c.Github.APIURL = githubPublicAPI
	}
	if c.Gitlab.APIURL == "" {
		c.Gitlab.APIURL = "https://gitlab.com/api/v4"
	}
	c.Notifications.Provider = strings.ToLower(strings.TrimSpace(c.Notifications.Provider))
	if c.Notifications.Provider == "" {
		c.Notifications.Provider = "slack"
	}
}

// String returns the configuration in string format.
func (c *Config) String() string {
	redacted := *c
	redacted.Github.Token = redact(c.Github.Token)
	redacted.Gitlab.Token = redact(c.Gitlab.Token)
	redacted.Notifications.Token = redact(c.Notifications.Token)
	redacted.Notifications.DiscordToken = redact(c.Notifications.DiscordToken)

	out, _ := yaml.Marshal(redacted)
	return string(out)
}

// Validate fails when something required for posting the report is missing
func (c *Config) Validate() error {
	if !c.IsGithub() && !c.IsGitlab() {
		return fmt.Errorf("no CI context found, set GITHUB_REPOSITORY and GITHUB_RUN_ID or CI_PROJECT_PATH and CI_PIPELINE_ID")
	}
	if c.IsGithub() && c.Github.Token == "" {
		return fmt.Errorf("github-token input is required")
	}
	if !c.IsGithub() && c.IsGitlab() && c.Gitlab.Token == "" {
		return fmt.Errorf("gitlab-token input is required")
	}
	if len(c.Notifications.ChannelList()) == 0 {
		return fmt.Errorf("channels input is required")
	}
	if c.DryRun.Enabled() {
		return nil
	}

	switch c.Notifications.Provider {
	case "slack":
		if c.Notifications.Token == "" {
			return fmt.Errorf("slack-token input is required")
		}
	case "discord":
		if c.Notifications.DiscordToken == "" {
			return fmt.Errorf("discord-token input is required")
		}
	default:
		return fmt.Errorf("unknown notifications provider: %s", c.Notifications.Provider)
	}

	return nil
}

type Config struct {
	Logging       Logging
	Github        Github
	Gitlab        Gitlab
	Notifications Notifications
	DryRun        Flag `envconfig:"INPUT_DRY-RUN"`
}

// Logging provides the logging configuration.
type Logging struct {
	Debug  bool `envconfig:"DEBUG"`
	Trace  bool `envconfig:"TRACE"`
	Color  bool `envconfig:"LOGS_COLOR"`
	Pretty bool `envconfig:"LOGS_PRETTY"`
	Text   bool `envconfig:"LOGS_TEXT"`
}

// Github holds the GitHub Actions run context
type Github struct {
	Token      Input  `envconfig:"INPUT_GITHUB-TOKEN" yaml:"token"`
	Repository string `envconfig:"GITHUB_REPOSITORY" yaml:"repository"`
	RunID      int64  `envconfig:"GITHUB_RUN_ID" yaml:"runID"`
	APIURL     string `envconfig:"GITHUB_API_URL" yaml:"apiURL"`
}

// Gitlab holds the GitLab CI pipeline context
type Gitlab struct {
	Token       Input  `envconfig:"INPUT_GITLAB-TOKEN" yaml:"token"`
	ProjectPath string `envconfig:"CI_PROJECT_PATH" yaml:"projectPath"`
	PipelineID  int64  `envconfig:"CI_PIPELINE_ID" yaml:"pipelineID"`
	APIURL      string `envconfig:"CI_API_V4_URL" yaml:"apiURL"`
}

type Notifications struct {
	Provider     string `envconfig:"INPUT_PROVIDER" yaml:"provider"`
	Token        Input  `envconfig:"INPUT_SLACK-TOKEN" yaml:"token"`
	DiscordToken Input  `envconfig:"INPUT_DISCORD-TOKEN" yaml:"discordToken"`
	Channels     string `envconfig:"INPUT_CHANNELS" yaml:"channels"`
	Condensed    Flag   `envconfig:"INPUT_CONDENSED" yaml:"condensed"`
}

func (n Notifications) ChannelList() []string {
	return notifications.ParseChannels(n.Channels)
}

func (c *Config) IsGithub() bool {
	return c.Github.Repository != "" && c.Github.RunID != 0
}

func (c *Config) IsGitlab() bool {
	return c.Gitlab.ProjectPath != "" && c.Gitlab.PipelineID != 0
}

// IsGithubEnterprise is true when the run is not on github.com
func (c *Config) IsGithubEnterprise() bool {
	return strings.TrimSuffix(c.Github.APIURL, "/") != githubPublicAPI
}

// RunID returns the id of the run on the detected CI platform
func (c *Config) RunID() int64 {
	if c.IsGithub() {
		return c.Github.RunID
	}
	return c.Gitlab.PipelineID
}

// Flag is a textual boolean action input.
// Only "true" (case-insensitive) enables it, any other value leaves it disabled.
type Flag string

func (f *Flag) Decode(value string) error {
	*f = Flag(strings.TrimSpace(value))
	return nil
}

func (f Flag) Enabled() bool {
	return strings.ToLower(string(f)) == "true"
}

func (f Flag) MarshalYAML() (interface{}, error) {
	return strconv.FormatBool(f.Enabled()), nil
}

// Input is a secret action input
type Input string

func (i *Input) Decode(value string) error {
	*i = Input(strings.TrimSpace(value))
	return nil
}

func (i Input) String() string {
	return string(i)
}

func redact(i Input) Input {
	if i == "" {
		return ""
	}
	return "********"
}

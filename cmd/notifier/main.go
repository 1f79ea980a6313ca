package main

import (
	"fmt"
	"io"
	"os"

	"github.com/enescakir/emoji"
	"github.com/gimlet-io/workflow-notifier/cmd/notifier/config"
	"github.com/gimlet-io/workflow-notifier/pkg/actions"
	"github.com/gimlet-io/workflow-notifier/pkg/notifications"
	"github.com/gimlet-io/workflow-notifier/pkg/reporter"
	"github.com/gimlet-io/workflow-notifier/pkg/scm"
	"github.com/gimlet-io/workflow-notifier/pkg/version"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:    "workflow-notifier",
		Version: version.String(),
		Usage:   "posts the outcome of a CI workflow run to chat channels",
		UsageText: `workflow-notifier
     INPUT_GITHUB-TOKEN, INPUT_SLACK-TOKEN and INPUT_CHANNELS are read from the environment`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "dotenv file to load before reading the environment",
				Value: ".env",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "print the message instead of posting it, INPUT_DRY-RUN=true environment variable alternatively",
			},
		},
		Action: notify,
	}

	err := app.Run(os.Args)
	if err != nil {
		fail(os.Stderr, os.Stdout, err)
		os.Exit(1)
	}
}

// fail logs the error and reports it to the runner
func fail(stderr io.Writer, stdout io.Writer, err error) {
	logrus.Error(err)
	fmt.Fprintf(stderr, "%s %s\n", emoji.CrossMark, err.Error())
	actions.SetFailed(stdout, err.Error())
}

func notify(c *cli.Context) error {
	envFile := c.String("env-file")
	err := godotenv.Load(envFile)
	if err != nil {
		logrus.Debugf("could not load %s file, relying on env vars", envFile)
	}

	config, err := config.Environ()
	if err != nil {
		return fmt.Errorf("invalid configuration: %s", err)
	}
	if c.Bool("dry-run") {
		config.DryRun = "true"
	}

	initLogging(config)

	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		fmt.Println(config.String())
	}

	err = config.Validate()
	if err != nil {
		return fmt.Errorf("invalid configuration: %s", err)
	}

	fetcher, err := scm.NewFetcher(config)
	if err != nil {
		return err
	}

	r := reporter.New(
		fetcher,
		notificationProvider(config),
		config.Notifications.ChannelList(),
		config.Notifications.Condensed.Enabled(),
	)

	return r.Report(c.Context, config.RunID())
}

func notificationProvider(config *config.Config) notifications.Provider {
	if config.DryRun.Enabled() {
		return &notifications.ConsoleProvider{Out: os.Stdout}
	}

	if config.Notifications.Provider == "discord" {
		return &notifications.DiscordProvider{
			Token: config.Notifications.DiscordToken.String(),
		}
	}

	return &notifications.SlackProvider{
		Token: config.Notifications.Token.String(),
	}
}

// helper function configures the logging.
func initLogging(c *config.Config) {
	if c.Logging.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if c.Logging.Trace {
		logrus.SetLevel(logrus.TraceLevel)
	}
	if c.Logging.Text {
		logrus.SetFormatter(&logrus.TextFormatter{
			ForceColors:   c.Logging.Color,
			DisableColors: !c.Logging.Color,
		})
	} else {
		logrus.SetFormatter(&logrus.JSONFormatter{
			PrettyPrint: c.Logging.Pretty,
		})
	}
}

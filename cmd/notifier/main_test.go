package main

import (
	"bytes"
	"fmt"
	"os"
	"testing"

	"github.com/gimlet-io/workflow-notifier/cmd/notifier/config"
	"github.com/gimlet-io/workflow-notifier/pkg/notifications"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func Test_NotificationProvider(t *testing.T) {
	slack := notificationProvider(&config.Config{
		Notifications: config.Notifications{Provider: "slack", Token: "xoxb-token"},
	})
	assert.Equal(t, &notifications.SlackProvider{Token: "xoxb-token"}, slack)

	discord := notificationProvider(&config.Config{
		Notifications: config.Notifications{Provider: "discord", DiscordToken: "discord-token"},
	})
	assert.Equal(t, &notifications.DiscordProvider{Token: "discord-token"}, discord)

	dryRun := notificationProvider(&config.Config{
		Notifications: config.Notifications{Provider: "discord", DiscordToken: "discord-token"},
		DryRun:        "True",
	})
	assert.IsType(t, &notifications.ConsoleProvider{}, dryRun)
}

func Test_InitLogging(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)

	initLogging(&config.Config{Logging: config.Logging{Debug: true, Text: true}})
	assert.True(t, logrus.IsLevelEnabled(logrus.DebugLevel))
	assert.False(t, logrus.IsLevelEnabled(logrus.TraceLevel))
	assert.IsType(t, &logrus.TextFormatter{}, logrus.StandardLogger().Formatter)

	initLogging(&config.Config{Logging: config.Logging{Trace: true}})
	assert.True(t, logrus.IsLevelEnabled(logrus.TraceLevel))
	assert.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)
}

func Test_Fail(t *testing.T) {
	logs := &bytes.Buffer{}
	logrus.SetOutput(logs)
	defer logrus.SetOutput(os.Stderr)

	stderr := &bytes.Buffer{}
	stdout := &bytes.Buffer{}
	fail(stderr, stdout, fmt.Errorf("cannot list jobs: 401 Bad credentials"))

	assert.Contains(t, logs.String(), "cannot list jobs: 401 Bad credentials")
	assert.Contains(t, logs.String(), "error")
	assert.Contains(t, stderr.String(), "cannot list jobs: 401 Bad credentials")
	assert.Equal(t, "::error::cannot list jobs: 401 Bad credentials\n", stdout.String())
}

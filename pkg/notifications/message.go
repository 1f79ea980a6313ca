package notifications

// Message knows how to render itself for every chat provider
type Message interface {
	AsSlackMessage() (*slackMessage, error)
	AsDiscordMessage() (*discordMessage, error)
	AsText() string
}

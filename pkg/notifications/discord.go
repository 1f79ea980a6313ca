package notifications

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"
)

const (
	discordGreen  = 3066993
	discordRed    = 15158332
	discordOrange = 15105570
	discordGrey   = 9807270
)

type DiscordProvider struct {
	Token string

	// Client replaces the http client of the discord session
	Client *http.Client
}

type discordMessage struct {
	Text  string                  `json:"text"`
	Embed *discordgo.MessageEmbed `json:"embed"`
}

func (d *DiscordProvider) Send(ctx context.Context, channel string, msg Message) error {
	discordBot, err := discordgo.New("Bot " + d.Token)
	if err != nil {
		return fmt.Errorf("error creating Discord session, %s", err)
	}
	if d.Client != nil {
		discordBot.Client = d.Client
	}

	discordMessage, err := msg.AsDiscordMessage()
	if err != nil {
		return fmt.Errorf("cannot create discord message: %s", err)
	}

	return d.post(ctx, discordBot, channel, discordMessage)
}

func (d *DiscordProvider) post(ctx context.Context, session *discordgo.Session, channel string, msg *discordMessage) error {
	send := &discordgo.MessageSend{
		Content: msg.Text,
	}
	if msg.Embed != nil {
		send.Embeds = []*discordgo.MessageEmbed{msg.Embed}
	}

	_, err := session.ChannelMessageSendComplex(channel, send, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("could not post to discord channel %s: %s", channel, err)
	}

	return nil
}

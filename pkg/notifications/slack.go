package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
)

const markdown = "mrkdwn"
const section = "section"

const slackPostMessageURL = "https://slack.com/api/chat.postMessage"

type SlackProvider struct {
	Token string

	// APIURL overrides the chat.postMessage endpoint
	APIURL string
	Client *http.Client
}

type slackMessage struct {
	Channel string  `json:"channel"`
	Text    string  `json:"text"`
	Blocks  []Block `json:"blocks,omitempty"`
}

type Block struct {
	Type string `json:"type"`
	Text *Text  `json:"text,omitempty"`
}

type Text struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type slackResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func (s *SlackProvider) Send(ctx context.Context, channel string, msg Message) error {
	slackMessage, err := msg.AsSlackMessage()
	if err != nil {
		return fmt.Errorf("cannot create slack message: %s", err)
	}

	// the rendered message is shared between channels
	toSend := *slackMessage
	toSend.Channel = channel

	return s.post(ctx, &toSend)
}

func (s *SlackProvider) post(ctx context.Context, msg *slackMessage) error {
	b := new(bytes.Buffer)
	err := json.NewEncoder(b).Encode(msg)
	if err != nil {
		return fmt.Errorf("could not encode message to slack: %s", err)
	}

	url := s.APIURL
	if url == "" {
		url = slackPostMessageURL
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, b)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.Token))

	res, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("could not post to slack: %s", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("cannot read slack response: %s", err)
	}

	if res.StatusCode != http.StatusOK {
		logrus.Debugf("Slack response: %s", string(body))
		return fmt.Errorf("could not post to slack, status: %d", res.StatusCode)
	}

	var parsed slackResponse
	err = json.Unmarshal(body, &parsed)
	if err != nil {
		return fmt.Errorf("cannot parse slack response: %s", err)
	}
	if !parsed.OK {
		logrus.Debugf("Slack response: %s", string(body))
		return fmt.Errorf("could not post to slack channel %s: %s", msg.Channel, parsed.Error)
	}

	return nil
}

package bot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/erkineren/pipeline-notify/internal/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// ErrEmptyMessage is returned when asked to deliver a blank notification.
var ErrEmptyMessage = errors.New("message must not be empty")

type Bot struct {
	API    *tgbotapi.BotAPI
	client *http.Client
	chatID string
}

// New returns a Bot that posts to chatID through the Bot API endpoint
// template (see tgbotapi.APIEndpoint). No request is made until Notify.
func New(token, chatID, endpoint string, timeout time.Duration) (*Bot, error) {
	if token == "" {
		return nil, errors.New("bot token must not be empty")
	}
	if chatID == "" {
		return nil, errors.New("chat id must not be empty")
	}
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}

	client := &http.Client{Timeout: timeout}

	// Built by hand instead of tgbotapi.NewBotAPI, which calls getMe first.
	api := &tgbotapi.BotAPI{
		Token:  token,
		Buffer: 100,
		Client: &statusCheckingClient{ctx: context.Background(), next: client},
	}
	api.SetAPIEndpoint(endpoint)

	return &Bot{
		API:    api,
		client: client,
		chatID: chatID,
	}, nil
}

// Notify delivers text to the configured chat as a single sendMessage call.
func (b *Bot) Notify(ctx context.Context, text string) error {
	return b.SendNotification(ctx, models.Notification{Recipient: b.chatID, Text: text})
}

func (b *Bot) SendNotification(ctx context.Context, notification models.Notification) error {
	if strings.TrimSpace(notification.Text) == "" {
		return ErrEmptyMessage
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := newMessage(notification)

	// tgbotapi has no context support; bind ctx through a per-call client.
	api := *b.API
	client := &statusCheckingClient{ctx: ctx, next: b.client}
	api.Client = client

	log.WithFields(log.Fields{
		"chat_id": notification.Recipient,
		"length":  len(notification.Text),
	}).Debug("Sending Telegram message")

	if _, err := api.Send(msg); err != nil {
		if !client.ok {
			return fmt.Errorf("failed to send message: %w", redactToken(err, b.API.Token))
		}
		// Status 200 is delivery; the body is not required to be a Bot API result.
		log.WithError(err).WithField("chat_id", notification.Recipient).Warn("Telegram answered 200 with an unexpected body")
	}

	log.WithField("chat_id", notification.Recipient).Info("Telegram message sent")
	return nil
}

// newMessage addresses numeric recipients by chat id and anything else,
// such as "@channel", by channel username.
func newMessage(notification models.Notification) tgbotapi.MessageConfig {
	if id, err := strconv.ParseInt(notification.Recipient, 10, 64); err == nil {
		return tgbotapi.NewMessage(id, notification.Text)
	}
	return tgbotapi.NewMessageToChannel(notification.Recipient, notification.Text)
}

// redactToken strips the bot token from transport errors, whose text embeds
// the request URL.
func redactToken(err error, token string) error {
	var urlErr *url.Error
	if token == "" || !errors.As(err, &urlErr) {
		return err
	}
	return &url.Error{
		Op:  urlErr.Op,
		URL: strings.ReplaceAll(urlErr.URL, token, maskToken(token)),
		Err: urlErr.Err,
	}
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "***" + token[len(token)-4:]
}

package notify

import (
	"context"
	"fmt"
	"html"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramChannel sends notifications to recipients who linked a chat ID.
type TelegramChannel struct {
	api *tgbotapi.BotAPI
}

func NewTelegramChannel(token string) (*TelegramChannel, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram api: %w", err)
	}
	return &TelegramChannel{api: api}, nil
}

func (c *TelegramChannel) Deliver(_ context.Context, rcpt Recipient, kind Kind, payload Payload) error {
	if rcpt.ChatID == 0 {
		return nil
	}
	msg := tgbotapi.NewMessage(rcpt.ChatID, formatMessage(kind, payload))
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

func formatMessage(kind Kind, p Payload) string {
	title := html.EscapeString(p.Title)
	var header string
	switch kind {
	case KindInviteCreated:
		header = "📨 You are invited to <b>" + title + "</b>"
	case KindInviteAccepted:
		header = "✅ An invite to <b>" + title + "</b> was accepted"
	case KindInviteRejected:
		header = "🚫 An invite to <b>" + title + "</b> was declined"
	case KindEventArranged:
		header = "📅 <b>" + title + "</b> has been scheduled"
	case KindEventDeleted:
		header = "🗑 <b>" + title + "</b> was cancelled"
	case KindReminder:
		header = "⏰ Upcoming: <b>" + title + "</b>"
	default:
		header = "<b>" + title + "</b>"
	}

	text := header
	if p.StartAt != nil {
		text += "\n🗓 " + p.StartAt.Format("02.01.2006 15:04")
	}
	if p.Body != "" {
		text += "\n" + html.EscapeString(p.Body)
	}
	return text
}

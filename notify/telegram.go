package notify

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"mobide/models"
)

// Notifier announces listings that newly matched a saved search.
type Notifier interface {
	NotifyListing(watchName string, l *models.Listing) error
}

// TelegramNotifier posts watch hits to a fixed chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	log.Printf("Telegram notifier authorized as %s", bot.Self.UserName)
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

func (n *TelegramNotifier) NotifyListing(watchName string, l *models.Listing) error {
	text := fmt.Sprintf("%s\n%s\n%s · %d км · %d л.с.\n%d ₽\n%s",
		watchName, l.Title, l.Date, l.Mileage, l.Power, l.Price, l.URL)

	_, err := n.bot.Send(tgbotapi.NewMessage(n.chatID, text))
	return err
}

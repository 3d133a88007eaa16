// Package notify alerts staff about complaints and bill requests.
package notify

import (
	"context"
	"fmt"
	"strings"

	"tableside/internal/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Notifier delivers staff alerts.
type Notifier interface {
	Complaint(ctx context.Context, c model.Complaint) error
	Bill(ctx context.Context, b model.BillRequest, currency string) error
}

var complaintLabels = map[model.ComplaintType]string{
	model.ComplaintFood:        "Qualité de la nourriture",
	model.ComplaintService:     "Service",
	model.ComplaintCleanliness: "Propreté",
	model.ComplaintWaiting:     "Temps d'attente",
	model.ComplaintOther:       "Autre",
}

var paymentLabels = map[model.PaymentMethod]string{
	model.PaymentCard:  "Carte bancaire",
	model.PaymentCash:  "Espèces",
	model.PaymentSplit: "Paiement partagé",
}

// ComplaintText formats a complaint for staff.
func ComplaintText(c model.Complaint) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Réclamation, table %s\n", c.TableNumber)
	fmt.Fprintf(&b, "Type: %s\n", complaintLabels[c.Type])
	fmt.Fprintf(&b, "Message: %s\n", c.Message)
	fmt.Fprintf(&b, "Heure: %s", c.CreatedAt.Format("15:04"))
	return b.String()
}

// BillText formats a bill request for staff.
func BillText(r model.BillRequest, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Addition demandée, table %s\n", r.TableNumber)
	fmt.Fprintf(&b, "Paiement: %s\n", paymentLabels[r.PaymentMethod])
	fmt.Fprintf(&b, "Total: %s %s\n", r.Total.StringFixed(2), currency)
	fmt.Fprintf(&b, "Heure: %s", r.CreatedAt.Format("15:04"))
	return b.String()
}

// Sender is the part of the bot API the notifier uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier posts alerts to the staff chat.
type TelegramNotifier struct {
	bot    Sender
	chatID int64
	logger zerolog.Logger
}

// NewTelegramNotifier connects to the Bot API with token.
func NewTelegramNotifier(token string, chatID int64, logger zerolog.Logger) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect telegram bot: %w", err)
	}
	return NewTelegramNotifierWithSender(api, chatID, logger), nil
}

// NewTelegramNotifierWithSender builds a notifier around an existing sender.
func NewTelegramNotifierWithSender(bot Sender, chatID int64, logger zerolog.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		bot:    bot,
		chatID: chatID,
		logger: logger.With().Str("component", "telegram-notifier").Logger(),
	}
}

func (n *TelegramNotifier) Complaint(_ context.Context, c model.Complaint) error {
	return n.send(ComplaintText(c), "complaint", c.TableNumber)
}

func (n *TelegramNotifier) Bill(_ context.Context, b model.BillRequest, currency string) error {
	return n.send(BillText(b, currency), "bill", b.TableNumber)
}

func (n *TelegramNotifier) send(text, kind, table string) error {
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error().Err(err).Str("kind", kind).Str("table", table).Msg("failed to notify staff")
		return fmt.Errorf("failed to send %s notification: %w", kind, err)
	}
	n.logger.Debug().Str("kind", kind).Str("table", table).Msg("staff notified")
	return nil
}

// LogNotifier writes alerts to the log when Telegram is disabled.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a notifier that only logs.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With().Str("component", "staff-log").Logger()}
}

func (n *LogNotifier) Complaint(_ context.Context, c model.Complaint) error {
	n.logger.Info().
		Str("table", c.TableNumber).
		Str("type", string(c.Type)).
		Str("message", c.Message).
		Msg("complaint filed")
	return nil
}

func (n *LogNotifier) Bill(_ context.Context, b model.BillRequest, currency string) error {
	n.logger.Info().
		Str("table", b.TableNumber).
		Str("payment_method", string(b.PaymentMethod)).
		Str("total", b.Total.StringFixed(2)+" "+currency).
		Msg("bill requested")
	return nil
}

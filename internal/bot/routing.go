package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/coach-sommeil-bot/internal/dialog"
	"github.com/Spok95/coach-sommeil-bot/internal/domain/users"
)

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		b.handleStart(ctx, msg)

	case "help":
		b.reply(chatID, helpText)

	case "diagnostic":
		b.sessions.Set(&dialog.Session{ChatID: chatID, State: dialog.StateDiagAge})
		b.reply(chatID, dialog.QuestionAge)

	case "cancel":
		if b.sessions.Get(chatID) != nil {
			b.sessions.Reset(chatID)
		}
		b.reply(chatID, "Diagnostic annulé. Tape /diagnostic pour recommencer.")

	case "premium":
		b.handlePremium(ctx, msg)

	case "status":
		b.handleStatus(ctx, msg)

	case "siestes":
		// Fields, не сравнение с пустой строкой: аргумент из одних пробелов
		// тоже означает «без аргумента»
		fields := strings.Fields(msg.CommandArguments())
		if len(fields) == 0 {
			b.reply(chatID, "Usage : /siestes <âge>\nEx: /siestes 6")
			return
		}
		age, err := strconv.Atoi(fields[0])
		if err != nil {
			b.reply(chatID, "Usage : /siestes <âge>\nEx: /siestes 6")
			return
		}
		b.reply(chatID, siestesText(age))

	case "routine":
		if len(msg.CommandArguments()) == 0 {
			b.reply(chatID, "Usage : /routine <âge>\nEx: /routine 7")
			return
		}
		b.reply(chatID, routineText)

	case "coucher":
		b.reply(chatID, coucherText)

	case "reveil":
		fields := strings.Fields(msg.CommandArguments())
		if len(fields) == 0 {
			b.reply(chatID, "Usage : /reveil <heure>\nEx: /reveil 2h30")
			return
		}
		b.reply(chatID, reveilText(fields[0]))

	case "crise":
		b.reply(chatID, criseText)

	case "regression":
		b.reply(chatID, regressionText)

	case "conseil":
		b.reply(chatID, fmt.Sprintf("💡 **Conseil**\n\n%s", randomConseil()))

	case "export":
		b.handleExport(ctx, msg)

	default:
		b.reply(chatID, "Commande inconnue. Tape /help")
	}
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	from := msg.From

	err := b.users.Upsert(ctx, users.Telegram{
		ID: from.ID, Username: from.UserName, FirstName: from.FirstName,
	})
	if err != nil {
		b.log.Error("start upsert failed", slog.Int64("user_id", from.ID), slog.Any("err", err))
		b.reply(chatID, "❌ Erreur. Réessaie ou tape /help")
		return
	}

	// возврат со страницы оплаты Stripe через deep-link
	switch msg.CommandArguments() {
	case "payment_success":
		b.reply(chatID, "✅ **Paiement réussi !**\n\nTon abonnement Premium sera activé dans quelques instants.\nTape /status pour vérifier.")
		return
	case "payment_cancel":
		b.reply(chatID, "❌ **Paiement annulé**\n\nTu peux réessayer avec /premium")
		return
	}

	b.reply(chatID, welcomeText(from.FirstName))
}

// handleSessionMessage — свободный текст вне команд; интересен только
// когда открыт диагностический опрос.
func (b *Bot) handleSessionMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	sess := b.sessions.Get(chatID)
	if sess == nil {
		return
	}

	outcome, reply := dialog.Advance(sess, msg.Text)
	switch outcome {
	case dialog.StepCancelled:
		b.sessions.Reset(chatID)
		b.reply(chatID, "Diagnostic annulé. Tape /diagnostic pour recommencer.")
	case dialog.StepDone:
		if !b.premium.IsPremium(ctx, msg.From.ID) {
			reply += "\n\n✨ **Premium** : /premium"
		}
		b.sessions.Reset(chatID)
		b.reply(chatID, reply)
	default:
		b.sessions.Set(sess)
		b.reply(chatID, reply)
	}
}

func (b *Bot) handlePremium(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	userID := msg.From.ID

	if b.premium.IsPremium(ctx, userID) {
		u, err := b.users.Get(ctx, userID)
		if err != nil || u.SubscriptionUntil == nil {
			b.reply(chatID, "✨ **Tu es abonné(e) Premium !**")
			return
		}
		b.reply(chatID, premiumActiveText(u.SubscriptionUntil.Format("02/01/2006")))
		return
	}

	url, err := b.checkout.CreateCheckoutSession(ctx, userID)
	if err != nil {
		b.log.Error("checkout session failed", slog.Int64("user_id", userID), slog.Any("err", err))
		b.reply(chatID, "❌ Erreur paiement. Réessaie plus tard.")
		return
	}

	m := tgbotapi.NewMessage(chatID, premiumOfferText)
	m.ParseMode = tgbotapi.ModeMarkdown
	m.ReplyMarkup = premiumKeyboard(url)
	b.send(m)
}

func (b *Bot) handleStatus(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	userID := msg.From.ID

	u, err := b.users.Get(ctx, userID)
	if err != nil {
		b.reply(chatID, "❌ Tape /start pour t'inscrire.")
		return
	}
	if b.premium.IsPremium(ctx, userID) && u.SubscriptionUntil != nil {
		b.reply(chatID, fmt.Sprintf(
			"✅ **Statut : Premium Actif**\n\n📅 Jusqu'au : %s\n💚 Toutes les fonctionnalités débloquées !",
			u.SubscriptionUntil.Format("02/01/2006")))
		return
	}
	b.reply(chatID, "📊 **Statut : Version Gratuite**\n\n✨ Passe Premium : /premium")
}

// handleDemoActivation — кнопка «Test DEMO»: включает месяц премиума
// без оплаты, оставлена для ручной проверки пайплайна.
func (b *Bot) handleDemoActivation(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	userID := cb.From.ID
	if err := b.premium.Activate(ctx, userID, 1, nil); err != nil {
		b.log.Error("demo activation failed", slog.Int64("user_id", userID), slog.Any("err", err))
		b.reply(cb.Message.Chat.ID, "❌ Erreur. Réessaie plus tard.")
		return
	}
	edit := tgbotapi.NewEditMessageText(cb.Message.Chat.ID, cb.Message.MessageID,
		"🎉 **Premium activé ! (DEMO)**\n\nTape /status pour voir ton abonnement.")
	edit.ParseMode = tgbotapi.ModeMarkdown
	b.send(edit)
}

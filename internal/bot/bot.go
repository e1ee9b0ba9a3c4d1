package bot

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/coach-sommeil-bot/internal/dialog"
	"github.com/Spok95/coach-sommeil-bot/internal/domain/premium"
	"github.com/Spok95/coach-sommeil-bot/internal/domain/users"
	"github.com/Spok95/coach-sommeil-bot/internal/infra/payments"
)

// telegramAPI — срез методов *tgbotapi.BotAPI, который реально нужен боту;
// в тестах на его место встаёт запись отправленного.
type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type Bot struct {
	api       telegramAPI
	log       *slog.Logger
	users     *users.Repo
	sessions  *dialog.Store
	premium   *premium.Service
	checkout  *payments.Client
	adminChat int64
}

func New(api telegramAPI, log *slog.Logger,
	usersRepo *users.Repo, sessions *dialog.Store,
	premiumSvc *premium.Service, checkout *payments.Client,
	adminChatID int64) *Bot {

	return &Bot{
		api: api, log: log, users: usersRepo, sessions: sessions,
		premium: premiumSvc, checkout: checkout, adminChat: adminChatID,
	}
}

func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec
	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			if upd.Message != nil {
				b.onMessage(ctx, upd)
			} else if upd.CallbackQuery != nil {
				b.onCallback(ctx, upd)
			}
		}
	}
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send failed", slog.Any("err", err))
	}
}

// reply — обычный ответ с Markdown-разметкой, как во всех текстах бота.
func (b *Bot) reply(chatID int64, text string) {
	m := tgbotapi.NewMessage(chatID, text)
	m.ParseMode = tgbotapi.ModeMarkdown
	b.send(m)
}

func (b *Bot) onMessage(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	b.handleSessionMessage(ctx, msg)
}

func (b *Bot) onCallback(ctx context.Context, upd tgbotapi.Update) {
	cb := upd.CallbackQuery
	// подтверждаем сразу, иначе у пользователя крутится «часики»
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		b.log.Error("callback answer failed", slog.Any("err", err))
	}

	switch cb.Data {
	case "premium:demo":
		b.handleDemoActivation(ctx, cb)
	}
}

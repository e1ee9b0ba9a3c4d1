package bot

import (
	"context"
	"io"
	"log/slog"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/coach-sommeil-bot/internal/dialog"
)

// apiRecorder подменяет Telegram API и копит отправленное.
type apiRecorder struct {
	sent []tgbotapi.Chattable
}

func (a *apiRecorder) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	a.sent = append(a.sent, c)
	return tgbotapi.Message{}, nil
}

func (a *apiRecorder) Request(_ tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (a *apiRecorder) GetUpdatesChan(_ tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return nil
}

func (a *apiRecorder) lastText(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, a.sent)
	m, ok := a.sent[len(a.sent)-1].(tgbotapi.MessageConfig)
	require.True(t, ok)
	return m.Text
}

func newTestBot() (*Bot, *apiRecorder) {
	api := &apiRecorder{}
	b := &Bot{
		api:      api,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		sessions: dialog.NewStore(),
	}
	return b, api
}

// commandMessage собирает сообщение с bot_command entity, как его присылает Telegram.
func commandMessage(text string, cmdLen int) *tgbotapi.Message {
	return &tgbotapi.Message{
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: cmdLen}},
		Chat:     &tgbotapi.Chat{ID: 1},
		From:     &tgbotapi.User{ID: 1},
	}
}

func textMessage(text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: 1},
		From: &tgbotapi.User{ID: 1},
	}
}

// Аргумент из одних пробелов проходит проверку «строка не пуста», но Fields
// по нему пуст — раньше это роняло процесс по index out of range.
func TestCommand_WhitespaceOnlyArguments(t *testing.T) {
	b, api := newTestBot()

	b.handleCommand(context.Background(), commandMessage("/siestes   ", len("/siestes")))
	assert.Contains(t, api.lastText(t), "Usage : /siestes")

	b.handleCommand(context.Background(), commandMessage("/reveil  ", len("/reveil")))
	assert.Contains(t, api.lastText(t), "Usage : /reveil")
}

func TestCommand_ArgumentParsing(t *testing.T) {
	b, api := newTestBot()

	b.handleCommand(context.Background(), commandMessage("/siestes 6", len("/siestes")))
	assert.Contains(t, api.lastText(t), "4-6 mois : 3 siestes")

	b.handleCommand(context.Background(), commandMessage("/siestes six", len("/siestes")))
	assert.Contains(t, api.lastText(t), "Usage : /siestes")
}

func TestSession_InvalidInputRepromptsWithoutAdvancing(t *testing.T) {
	b, api := newTestBot()
	b.sessions.Set(&dialog.Session{ChatID: 1, State: dialog.StateDiagAge})

	b.handleSessionMessage(context.Background(), textMessage("beaucoup"))

	assert.Contains(t, api.lastText(t), "Merci d'entrer un nombre")
	sess := b.sessions.Get(1)
	require.NotNil(t, sess, "сессия не должна пропасть")
	assert.Equal(t, dialog.StateDiagAge, sess.State)
}

func TestSession_CancelDestroysWithoutRecommendation(t *testing.T) {
	b, api := newTestBot()
	b.sessions.Set(&dialog.Session{ChatID: 1, State: dialog.StateDiagBedtime, AgeMonths: 6, NapCount: 2})

	b.handleSessionMessage(context.Background(), textMessage("cancel"))

	assert.Nil(t, b.sessions.Get(1))
	got := api.lastText(t)
	assert.Contains(t, got, "Diagnostic annulé")
	assert.NotContains(t, got, "Résultat du Diagnostic")
}

func TestSession_FreeTextWithoutSessionIsIgnored(t *testing.T) {
	b, api := newTestBot()

	b.handleSessionMessage(context.Background(), textMessage("bonjour"))

	assert.Empty(t, api.sent)
}

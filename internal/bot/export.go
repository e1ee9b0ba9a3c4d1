package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/xuri/excelize/v2"
)

// handleExport — выгрузка базы пользователей в Excel, только для админа.
func (b *Bot) handleExport(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if msg.From.ID != b.adminChat {
		b.reply(chatID, "Commande inconnue. Tape /help")
		return
	}

	list, err := b.users.List(ctx)
	if err != nil {
		b.log.Error("export list failed", slog.Any("err", err))
		b.reply(chatID, "❌ Erreur. Réessaie plus tard.")
		return
	}

	f := excelize.NewFile()
	const sheet = "Users"
	_ = f.SetSheetName("Sheet1", sheet)

	headers := []string{"user_id", "username", "first_name", "premium", "subscription_until", "created_at", "last_activity"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for row, u := range list {
		until := ""
		if u.SubscriptionUntil != nil {
			until = u.SubscriptionUntil.Format("2006-01-02 15:04")
		}
		values := []any{
			u.UserID, u.Username, u.FirstName, u.IsPremium, until,
			u.CreatedAt.Format("2006-01-02 15:04"),
			u.LastActivity.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		b.log.Error("export build failed", slog.Any("err", err))
		b.reply(chatID, "❌ Erreur. Réessaie plus tard.")
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("users_%s.xlsx", time.Now().Format("2006-01-02")),
		Bytes: buf.Bytes(),
	})
	doc.Caption = fmt.Sprintf("Utilisateurs : %d", len(list))
	b.send(doc)
}

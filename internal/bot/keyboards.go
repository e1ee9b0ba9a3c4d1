package bot

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

func premiumKeyboard(checkoutURL string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("✨ S'abonner (9,90€/mois)", checkoutURL),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Test DEMO gratuit", "premium:demo"),
		),
	)
}

package dialog

import (
	"strconv"
	"strings"
)

const (
	QuestionAge     = "🔍 **Diagnostic - Étape 1/4**\n\nQuel est l'âge de ton bébé ? (en mois)\nEx: 6, 12, 18..."
	QuestionNaps    = "📅 **Diagnostic - Étape 2/4**\n\nCombien de siestes par jour ?\nEx: 2, 3..."
	QuestionBedtime = "🌙 **Diagnostic - Étape 3/4**\n\nHeure du coucher le soir ?\nEx: 19h30, 20h..."
	QuestionWakes   = "😴 **Diagnostic - Étape 4/4**\n\nRéveils nocturnes (nombre moyen) ?\nEx: 0, 2, 5..."

	retryNumber = "Merci d'entrer un nombre."
)

type StepOutcome int

const (
	// StepContinue — опрос продолжается, reply — следующий вопрос
	// или повтор текущего при невалидном вводе.
	StepContinue StepOutcome = iota
	// StepCancelled — пользователь прервал опрос, результата нет.
	StepCancelled
	// StepDone — все ответы собраны, reply — текст рекомендации.
	StepDone
)

// Advance применяет одно сообщение пользователя к сессии. Чистая логика
// переходов без ввода-вывода; удалить сессию по Cancelled/Done — дело
// вызывающей стороны. Невалидный ввод не двигает стадию и ни на что
// больше не расходуется.
func Advance(sess *Session, text string) (StepOutcome, string) {
	text = strings.TrimSpace(text)
	if strings.EqualFold(text, "cancel") {
		return StepCancelled, ""
	}

	switch sess.State {
	case StateDiagAge:
		n, err := strconv.Atoi(text)
		if err != nil {
			return StepContinue, retryNumber
		}
		sess.AgeMonths = n
		sess.State = StateDiagNaps
		return StepContinue, QuestionNaps

	case StateDiagNaps:
		n, err := strconv.Atoi(text)
		if err != nil {
			return StepContinue, retryNumber
		}
		sess.NapCount = n
		sess.State = StateDiagBedtime
		return StepContinue, QuestionBedtime

	case StateDiagBedtime:
		// единственный шаг без валидации: время коучера — свободный текст
		sess.BedtimeText = text
		sess.State = StateDiagWakes
		return StepContinue, QuestionWakes

	case StateDiagWakes:
		n, err := strconv.Atoi(text)
		if err != nil {
			return StepContinue, retryNumber
		}
		sess.WakeCount = n
		return StepDone, Recommend(sess.AgeMonths, sess.NapCount, sess.BedtimeText, sess.WakeCount)
	}

	return StepCancelled, ""
}

package dialog

import (
	"fmt"
	"strings"
)

// IdealNaps — норма дневных снов по возрасту в месяцах.
func IdealNaps(ageMonths int) int {
	switch {
	case ageMonths <= 3:
		return 4
	case ageMonths <= 6:
		return 3
	case ageMonths <= 12:
		return 2
	default:
		return 1
	}
}

// Recommend собирает текст результата диагностики. Чистая функция без
// ввода-вывода; premium-апселл добавляет вызывающая сторона.
func Recommend(ageMonths, napCount int, bedtime string, wakeCount int) string {
	var sb strings.Builder

	sb.WriteString("✅ **Résultat du Diagnostic**\n\n")
	sb.WriteString("📋 **Situation :**\n")
	fmt.Fprintf(&sb, "• Âge : %d mois\n", ageMonths)
	fmt.Fprintf(&sb, "• Siestes : %d/jour\n", napCount)
	fmt.Fprintf(&sb, "• Coucher : %s\n", bedtime)
	fmt.Fprintf(&sb, "• Réveils : %d/nuit\n\n", wakeCount)
	sb.WriteString("🔍 **Analyse :**")

	ideal := IdealNaps(ageMonths)
	switch {
	case napCount > ideal:
		fmt.Fprintf(&sb, "\n⚠️ Trop de siestes. Idéal : %d", ideal)
	case napCount < ideal:
		fmt.Fprintf(&sb, "\n💤 Besoin de plus de repos. Idéal : %d", ideal)
	default:
		sb.WriteString("\n✅ Nombre de siestes adapté")
	}

	switch {
	case wakeCount > 3:
		sb.WriteString("\n\n🌙 Réveils fréquents. Causes possibles :\n• Fenêtre de sommeil inadaptée\n• Coucher trop tardif")
	case wakeCount > 0:
		sb.WriteString("\n\n🌙 Quelques réveils normaux, optimisables")
	default:
		sb.WriteString("\n\n✨ Excellent ! Bébé dort bien")
	}

	fmt.Fprintf(&sb, "\n\n💡 **Recommandations :**\n→ /routine %d\n→ /siestes %d\n→ /coucher", ageMonths, ageMonths)
	return sb.String()
}

package bot

import (
	"fmt"
	"math/rand"
)

// Тексты бота — французские, как в продукте.

func welcomeText(firstName string) string {
	return fmt.Sprintf(`👋 Bonjour %s !

Bienvenue sur **Coach Sommeil™** 🌙

🔹 **Commandes disponibles :**

📊 /diagnostic - Analyse complète
😴 /siestes - Horaires idéaux
🌙 /coucher - Routine du soir
⏰ /reveil - Décoder un réveil
🆘 /crise - Protocole d'urgence
🌊 /regression - Situations spéciales
📋 /routine - Routine selon l'âge
💡 /conseil - Conseil du jour
❓ /help - Toutes les commandes

✨ **Premium (9,90€/mois)** : /premium

💪 Prêt(e) à retrouver des nuits paisibles ?`, firstName)
}

const helpText = `📖 **Commandes Coach Sommeil™**

🔍 /diagnostic - Questionnaire guidé
📅 /siestes <âge> - Ex: /siestes 6
📋 /routine <âge> - Ex: /routine 8
🌙 /coucher - Routine du soir
⏰ /reveil <heure> - Ex: /reveil 2h30
🆘 /crise - Bébé hurle
🌊 /regression - Situations spéciales
💡 /conseil - Conseil quotidien
✨ /premium - Infos abonnement
📊 /status - Ton statut`

func siestesText(age int) string {
	switch {
	case age <= 3:
		return "😴 **0-3 mois : 4-5 siestes**\n\nCourtes et fréquentes"
	case age <= 6:
		return "😴 **4-6 mois : 3 siestes**\n\nFenêtre 2-2h30 entre chaque"
	case age <= 12:
		return "😴 **7-12 mois : 2 siestes**\n\nMatin + après-midi"
	default:
		return "😴 **12+ mois : 1 sieste**\n\n12h30-13h (2-3h)"
	}
}

const coucherText = `🌙 **Routine du soir idéale**

18h30 : Repas calme
19h : Bain tiède
19h15 : Pyjama
19h20 : Histoire/berceuse
19h30 : Coucher

💡 Même ordre chaque soir !`

func reveilText(hour string) string {
	return fmt.Sprintf(`⏰ **Réveil à %s**

🔍 **Actions :**
→ Vérifier couche
→ Rassurer calmement
→ Pas de grande lumière
→ Retour au lit rapide`, hour)
}

const criseText = `🆘 **Protocole Anti-Crise**

✅ **Vérifications (30 sec)**
□ Couche ? Faim ? Froid/chaud ?

✅ **Apaisement**
→ Prends-le contre toi
→ Balancement doux
→ Chuchote "chhhh"

💡 Tu fais de ton mieux ❤️`

const regressionText = `🌊 **Situations spéciales**

🦷 **DENTS** : Douleur = réveils (3-7 jours)
📉 **RÉGRESSION 4 MOIS** : Cycles (2-4 sem)
🤒 **MALADIE** : Priorité confort
✈️ **VOYAGE** : Adapter progressivement

💡 Maintiens la routine = repère #1`

const routineText = "📋 **Routine journalière**\n\n7h : Réveil\nSiestes adaptées\n19h30 : Coucher\n\nUtilise /siestes pour détails."

func premiumActiveText(until string) string {
	return fmt.Sprintf(`✨ **Tu es abonné(e) Premium !**

📅 Actif jusqu'au : %s

🎁 **Tes avantages :**
✅ Diagnostic illimité
✅ Conseils personnalisés
✅ Contenus exclusifs
✅ Support prioritaire

💚 Merci de ta confiance !`, until)
}

const premiumOfferText = `✨ **Coach Sommeil Premium**

💰 **9,90€/mois** - Sans engagement

🎁 **Avantages :**
✅ Diagnostic illimité
✅ Plan personnalisé
✅ Conseils quotidiens adaptés
✅ PDF et tableaux exclusifs
✅ Support dédié

💳 **Paiement sécurisé Stripe**
→ Résiliable en 1 clic

👇 Clique pour t'abonner :`

var conseils = []string{
	"🌙 Bébé qui dort bien = bébé qui mange bien",
	"💡 Régularité > perfection",
	"😴 Bébé trop fatigué = dort moins bien",
	"🌡️ Température idéale : 19-20°C",
	"💤 Endormissement autonome = clé",
}

func randomConseil() string {
	return conseils[rand.Intn(len(conseils))]
}

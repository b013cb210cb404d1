// messages.go contains message templates and formatting helpers for Telegram.

package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Screen titles and captions.
const (
	msgAppTitle      = "مَكْتَبَتِي الْمَدْرَسِيَّة"
	msgAppSubtitle   = "اخْتَرْ كِتَابَكَ وَانْطَلِقْ فِي رِحْلَةِ الْعِلْم"
	msgNoBooks       = "لا توجد كتب متاحة لهذا المستوى حالياً"
	msgGamesTitle    = "الْعَبْ وَتَعَلَّمْ"
	msgVocabTitle    = "كلماتي الجديدة"
	msgQuestionOf    = "سؤال %d من %d"
	msgQuizDone      = "أحسنت يا بطل!"
	msgQuizScore     = "لقد أجبت على %d من %d أسئلة بشكل صحيح"
	msgLessonsDone   = "%d من %d دروس"
	msgNoLessons     = "لا توجد دروس في هذه الوحدة بعد"
	msgTapToListen   = "اضغط للاستماع"
	msgLessonImage   = "🖼 صورة الدرس"
	msgHelp          = "مرحباً! هذا بوت مكتبتي المدرسية.\n\n/start — البداية من جديد\n/home — الصفحة الرئيسية\n/units — وحدات الكتاب الحالي\n/games — الألعاب\n/help — المساعدة"
	msgUnknownInput  = "استعمل الأزرار أو الأوامر. اكتب /help للمساعدة."
	msgInternalError = "حدث خطأ ما. حاول مرة أخرى لاحقاً."
)

// Callback notices.
const (
	noticeChooseBook  = "اختر كتابًا أولاً"
	noticeOutdated    = "هذه الشاشة قديمة، إليك الشاشة الحالية"
	noticeComingSoon  = "قريباً!"
	noticeListen      = "🔊 الاستماع غير متاح بعد"
	noticeCorrect     = "✅ إجابة صحيحة"
	noticeWrong       = "❌ إجابة خاطئة"
	noticeNotFound    = "لم يتم العثور على هذا المحتوى"
	noticeUnknownData = "زر غير معروف"
)

// Button captions.
const (
	btnHome       = "🏠 الرئيسية"
	btnUnits      = "📚 الوحدات"
	btnGames      = "🎮 الألعاب"
	btnBack       = "→ رجوع"
	btnListen     = "🔊 استمع للدرس"
	btnStop       = "⏸ توقف"
	btnQuiz       = "📝 التمارين"
	btnVocab      = "🔤 الكلمات الجديدة"
	btnPlayGames  = "🎮 العب الآن"
	btnNext       = "التالي ←"
	btnPrev       = "→ السابق"
	btnTapListen  = "🔊 " + msgTapToListen
	btnRestart    = "🔁 إعادة المحاولة"
	btnBackLesson = "✔️ العودة للدرس"
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// link renders a MarkdownV2 inline link; ")" and "\" must be escaped in the url.
func link(text, url string) string {
	r := strings.NewReplacer(`\`, `\\`, `)`, `\)`)
	return "[" + md(text) + "](" + r.Replace(url) + ")"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string, kb tgbotapi.InlineKeyboardMarkup) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, text, kb)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	edit.DisableWebPagePreview = true
	return edit
}

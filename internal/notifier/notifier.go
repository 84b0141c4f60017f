package notifier

import (
	"fmt"
	"strings"

	"scraper/internal/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier announces freshly ingested articles to a Telegram channel.
// It is best-effort: the pipeline logs and ignores send failures.
type Notifier struct {
	bot       *tgbotapi.BotAPI
	channelID int64
}

func New(bot *tgbotapi.BotAPI, channelID int64) *Notifier {
	return &Notifier{
		bot:       bot,
		channelID: channelID,
	}
}

func (n *Notifier) Notify(article model.Article) error {
	const msgFormat = "*%s*\n\n%s"

	title := article.TitleEn
	if title == "" {
		title = article.TitleAr
	}

	msg := tgbotapi.NewMessage(n.channelID, fmt.Sprintf(
		msgFormat,
		EscapeForMarkdown(title),
		EscapeForMarkdown(article.SourceURL),
	))
	msg.ParseMode = "MarkdownV2"

	_, err := n.bot.Send(msg)
	if err != nil {
		return err
	}

	return nil
}

var (
	replacer = strings.NewReplacer(
		"-",
		"\\-",
		"_",
		"\\_",
		"*",
		"\\*",
		"[",
		"\\[",
		"]",
		"\\]",
		"(",
		"\\(",
		")",
		"\\)",
		"~",
		"\\~",
		"`",
		"\\`",
		">",
		"\\>",
		"#",
		"\\#",
		"+",
		"\\+",
		"=",
		"\\=",
		"|",
		"\\|",
		"{",
		"\\{",
		"}",
		"\\}",
		".",
		"\\.",
		"!",
		"\\!",
	)
)

func EscapeForMarkdown(src string) string {
	return replacer.Replace(src)
}

package bot

import (
	"context"
	"log/slog"

	"github.com/abc123denny/cryptocurrency-app/internal/pkg/botfmt"
	"gopkg.in/telebot.v4"
)

// reply — общий обработчик: таймаут на команду, ответ текстом, лог при ошибке отправки
func (b *Bot) reply(name string, run func(ctx context.Context, chatID int64, args []string) string) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		chatID := c.Chat().ID
		b.logger.Debug("bot: command received",
			slog.String("command", name),
			slog.Int64("chat_id", chatID),
			slog.Int("args_len", len(c.Args())),
		)

		ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
		defer cancel()

		text := run(ctx, chatID, c.Args())
		if err := sendText(func(msg string) error { return c.Send(msg) }, text); err != nil {
			b.logger.Error("bot: send failed",
				slog.String("command", name),
				slog.Int64("chat_id", chatID),
				slog.String("error", err.Error()),
			)
			return err
		}
		return nil
	}
}

func (b *Bot) handleStart(ctx context.Context, chatID int64, _ []string) string {
	return b.cmd.start(ctx, chatID)
}

func (b *Bot) handleCoins(ctx context.Context, chatID int64, _ []string) string {
	return b.cmd.coins(ctx, chatID)
}

func (b *Bot) handleCurrency(ctx context.Context, chatID int64, args []string) string {
	return b.cmd.currency(ctx, chatID, args)
}

func (b *Bot) handleSort(ctx context.Context, chatID int64, args []string) string {
	return b.cmd.sort(ctx, chatID, args)
}

func (b *Bot) handleMore(ctx context.Context, chatID int64, _ []string) string {
	return b.cmd.more(ctx, chatID)
}

func (b *Bot) handleRefresh(ctx context.Context, chatID int64, _ []string) string {
	return b.cmd.refresh(ctx, chatID)
}

func (b *Bot) handleCoin(ctx context.Context, chatID int64, args []string) string {
	return b.cmd.coin(ctx, chatID, args)
}

func (b *Bot) handleShare(ctx context.Context, chatID int64, _ []string) string {
	return b.cmd.share(ctx, chatID)
}

// sendText — ответ по частям: Telegram не принимает сообщения длиннее botfmt.MaxMessageLen
func sendText(send func(string) error, text string) error {
	for _, msg := range botfmt.Split(text, botfmt.MaxMessageLen) {
		if err := send(msg); err != nil {
			return err
		}
	}
	return nil
}

package bot

import (
	"log/slog"
	"time"

	"github.com/abc123denny/cryptocurrency-app/internal/service/coindetail"
	"gopkg.in/telebot.v4"
)

type Config struct {
	Token           string
	LongPollTimeout time.Duration
	CommandTimeout  time.Duration
	ChartDays       int
	ShareTop        int
}

// Bot — telegram-отрисовка экранов: список, детали монеты, share
type Bot struct {
	bot     *telebot.Bot
	cmd     *commands
	timeout time.Duration
	logger  *slog.Logger
}

// New создаёт бота и регистрирует команды
func New(cfg Config, screens Screens, coins coindetail.CoinClient, prefs PrefsStore, logger *slog.Logger) (*Bot, error) {
	const defaultPollTimeout = 10 * time.Second
	if cfg.LongPollTimeout <= 0 {
		cfg.LongPollTimeout = defaultPollTimeout
	}
	if cfg.CommandTimeout <= 0 {
		cfg.CommandTimeout = 10 * time.Second
	}

	b, err := telebot.NewBot(telebot.Settings{
		Token:  cfg.Token,
		Poller: &telebot.LongPoller{Timeout: cfg.LongPollTimeout},
	})
	if err != nil {
		return nil, err
	}

	bot := &Bot{
		bot: b,
		cmd: &commands{
			screens:    screens,
			coinClient: coins,
			prefs:      prefs,
			chartDays:  cfg.ChartDays,
			shareTop:   cfg.ShareTop,
			logger:     logger,
		},
		timeout: cfg.CommandTimeout,
		logger:  logger,
	}

	// маршруты команд
	b.Handle("/start", bot.reply("start", bot.handleStart))
	b.Handle("/coins", bot.reply("coins", bot.handleCoins))
	b.Handle("/currency", bot.reply("currency", bot.handleCurrency))
	b.Handle("/sort", bot.reply("sort", bot.handleSort))
	b.Handle("/more", bot.reply("more", bot.handleMore))
	b.Handle("/refresh", bot.reply("refresh", bot.handleRefresh))
	b.Handle("/coin", bot.reply("coin", bot.handleCoin))
	b.Handle("/share", bot.reply("share", bot.handleShare))
	return bot, nil
}

// Start запускает long polling
func (b *Bot) Start() {
	b.logger.Info("bot started")
	go b.bot.Start()
}

// Stop останавливает бота
func (b *Bot) Stop() {
	b.bot.Stop()
}

package bot

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/abc123denny/cryptocurrency-app/internal/domain"
	"github.com/abc123denny/cryptocurrency-app/internal/pkg/botfmt"
	"github.com/abc123denny/cryptocurrency-app/internal/repository"
	"github.com/abc123denny/cryptocurrency-app/internal/service/coindetail"
	"github.com/abc123denny/cryptocurrency-app/internal/service/coinlist"
	"github.com/abc123denny/cryptocurrency-app/internal/service/share"
)

// Screens — экраны списка; у каждого чата свой экран.
type Screens interface {
	Mount(ctx context.Context, id string, currency domain.Currency, sortBy domain.SortBy) (string, *coinlist.Controller)
	Get(id string) (*coinlist.Controller, error)
}

// PrefsStore — сохранённые валюта и сортировка чата.
type PrefsStore interface {
	GetPrefs(ctx context.Context, chatID int64) (domain.ChatPrefs, error)
	SavePrefs(ctx context.Context, p domain.ChatPrefs) error
}

// commands — логика команд без привязки к telebot
type commands struct {
	screens    Screens
	coinClient coindetail.CoinClient
	prefs      PrefsStore
	chartDays  int
	shareTop   int
	logger     *slog.Logger
}

func screenID(chatID int64) string {
	return "chat:" + strconv.FormatInt(chatID, 10)
}

// screen — экран чата; если его нет (или он закрыт по простою), монтируем заново с настройками чата.
func (h *commands) screen(ctx context.Context, chatID int64) (*coinlist.Controller, bool) {
	if list, err := h.screens.Get(screenID(chatID)); err == nil {
		return list, false
	}
	p := h.loadPrefs(ctx, chatID)
	_, list := h.screens.Mount(ctx, screenID(chatID), p.Currency, p.SortBy)
	return list, true
}

func (h *commands) loadPrefs(ctx context.Context, chatID int64) domain.ChatPrefs {
	p, err := h.prefs.GetPrefs(ctx, chatID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			h.logger.Error("get chat prefs failed",
				slog.Int64("chat_id", chatID),
				slog.String("error", err.Error()),
			)
		}
		return domain.ChatPrefs{ChatID: chatID}
	}
	return p
}

func (h *commands) savePrefs(ctx context.Context, chatID int64, st domain.ListState) {
	p := domain.ChatPrefs{
		ChatID:    chatID,
		Currency:  st.Params.Currency,
		SortBy:    st.Params.SortBy,
		UpdatedAt: time.Now().UTC(),
	}
	if err := h.prefs.SavePrefs(ctx, p); err != nil {
		h.logger.Error("save chat prefs failed",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()),
		)
	}
}

// start — новый экран списка для чата
func (h *commands) start(ctx context.Context, chatID int64) string {
	p := h.loadPrefs(ctx, chatID)
	_, list := h.screens.Mount(ctx, screenID(chatID), p.Currency, p.SortBy)
	return helpText + "\n\n" + renderList(list.State(), 0)
}

func (h *commands) coins(ctx context.Context, chatID int64) string {
	list, _ := h.screen(ctx, chatID)
	return renderList(list.State(), 0)
}

func (h *commands) currency(ctx context.Context, chatID int64, args []string) string {
	if len(args) != 1 {
		return "Укажи валюту: /currency usd или /currency twd"
	}
	c, ok := domain.ParseCurrency(args[0])
	if !ok {
		return "Валюта не поддерживается. Доступны: usd, twd"
	}

	list, _ := h.screen(ctx, chatID)
	if err := list.ChangeCurrency(ctx, c); err != nil {
		return translateError(err)
	}
	st := list.State()
	h.savePrefs(ctx, chatID, st)
	return renderList(st, 0)
}

func (h *commands) sort(ctx context.Context, chatID int64, args []string) string {
	if len(args) != 1 {
		return "Укажи сортировку: " + sortOrdersText()
	}
	s, ok := domain.ParseSortBy(args[0])
	if !ok {
		return "Сортировка не поддерживается. Доступны: " + sortOrdersText()
	}

	list, _ := h.screen(ctx, chatID)
	if err := list.ChangeSortBy(ctx, s); err != nil {
		return translateError(err)
	}
	st := list.State()
	h.savePrefs(ctx, chatID, st)
	return renderList(st, 0)
}

// more — следующая страница; показываем только новые монеты
func (h *commands) more(ctx context.Context, chatID int64) string {
	list, mounted := h.screen(ctx, chatID)
	if mounted {
		return renderList(list.State(), 0)
	}

	before := len(list.State().Items)
	list.LoadMore(ctx)
	st := list.State()
	if len(st.Items) == before {
		if st.IsFetching() {
			return "Загрузка ещё идёт, попробуйте чуть позже"
		}
		if st.IsFullyLoaded() {
			return "Больше монет нет"
		}
		return "Не удалось загрузить страницу, попробуйте позже"
	}
	return renderList(st, before)
}

func (h *commands) refresh(ctx context.Context, chatID int64) string {
	list, mounted := h.screen(ctx, chatID)
	if !mounted {
		list.Refresh(ctx)
	}
	return renderList(list.State(), 0)
}

// coin — экран деталей. Название и символ берём из списка, если монета там есть.
func (h *commands) coin(ctx context.Context, chatID int64, args []string) string {
	if len(args) != 1 {
		return "Укажи id монеты: /coin bitcoin"
	}
	coinID := strings.ToLower(strings.TrimSpace(args[0]))
	if !domain.ValidCoinID(coinID) {
		return "Некорректный id монеты. Пример: /coin bitcoin"
	}

	list, _ := h.screen(ctx, chatID)
	st := list.State()
	route := domain.Route{CoinID: coinID, Currency: st.Params.Currency}
	if item, ok := list.Item(coinID); ok {
		route = domain.RouteFor(item, st.Params.Currency)
	}

	detail := coindetail.NewController(h.coinClient, coindetail.Config{ChartDays: h.chartDays},
		h.logger.With(slog.Int64("chat_id", chatID), slog.String("coin_id", coinID)))
	detail.LoadDetail(ctx, route)
	return botfmt.FormatDetail(detail.View())
}

func (h *commands) share(ctx context.Context, chatID int64) string {
	list, _ := h.screen(ctx, chatID)
	st := list.State()
	if len(st.Items) == 0 {
		return "Список монет пуст"
	}
	msg := share.Format(st.Items, st.Params.Currency, h.shareTop)
	return msg.Text + "\n" + msg.URL
}

func renderList(st domain.ListState, from int) string {
	if len(st.Items) == 0 {
		return "Список монет пуст, попробуйте /refresh"
	}
	return botfmt.FormatList(st, from)
}

func sortOrdersText() string {
	names := make([]string, 0, len(domain.SortOrders))
	for _, s := range domain.SortOrders {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

const helpText = "Привет! Доступные команды:\n" +
	"/coins - список монет\n" +
	"/currency {usd|twd} - сменить валюту\n" +
	"/sort {порядок} - сменить сортировку\n" +
	"/more - следующая страница\n" +
	"/refresh - обновить список\n" +
	"/coin {id} - подробности по монете\n" +
	"/share - топ-10 для публикации"
